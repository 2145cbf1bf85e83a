//go:build linux

package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"
	"gopkg.in/yaml.v3"

	"github.com/hostsim/hostsim/sim/bridge"
	"github.com/hostsim/hostsim/sim/simtime"
)

var (
	convertRaw      uint64  // Raw SimulationTime tick count
	convertTimeval  []int64 // SEC,USEC
	convertTimespec []int64 // SEC,NSEC
)

// conversion shows one simulation time in every representation.
type conversion struct {
	Raw      uint64 `yaml:"raw"`
	Valid    bool   `yaml:"valid"`
	Duration string `yaml:"duration,omitempty"`
	Timeval  string `yaml:"timeval,omitempty"`
	Timespec string `yaml:"timespec,omitempty"`
	Emulated string `yaml:"emulated,omitempty"`
}

// convertCmd converts between raw ticks, timeval and timespec the same way
// the legacy C code does, through the bridge.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a simulation time between raw, timeval and timespec",
	Long:  "Convert one simulation time, given as a raw tick count, a timeval or a timespec, into every representation. Output is YAML on stdout; invalid inputs print valid: false.",
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := convertInput(cmd)
		if err != nil {
			return err
		}
		return writeConversion(cmd.OutOrStdout(), describe(raw))
	},
}

// convertInput returns the raw encoding of whichever input flag was set.
// Invalid native inputs become simtime.Invalid, as they do in the bridge.
func convertInput(cmd *cobra.Command) (uint64, error) {
	flags := cmd.Flags()
	set := 0
	for _, name := range []string{"raw", "timeval", "timespec"} {
		if flags.Changed(name) {
			set++
		}
	}
	if set != 1 {
		return 0, fmt.Errorf("exactly one of --raw, --timeval or --timespec is required")
	}

	switch {
	case flags.Changed("timeval"):
		if len(convertTimeval) != 2 {
			return 0, fmt.Errorf("--timeval takes SEC,USEC")
		}
		tv, err := timevalOf(convertTimeval[0], convertTimeval[1])
		if err != nil {
			return 0, err
		}
		return bridge.FromTimeval(tv), nil
	case flags.Changed("timespec"):
		if len(convertTimespec) != 2 {
			return 0, fmt.Errorf("--timespec takes SEC,NSEC")
		}
		ts, err := timespecOf(convertTimespec[0], convertTimespec[1])
		if err != nil {
			return 0, err
		}
		return bridge.FromTimespec(ts), nil
	default:
		return convertRaw, nil
	}
}

// describe renders raw in every representation the bridge offers.
func describe(raw uint64) conversion {
	c := conversion{Raw: raw}
	t, ok := simtime.FromRaw(raw)
	if !ok {
		return c
	}
	c.Valid = true
	c.Duration = t.String()
	c.Emulated = simtime.EmulatedFromAbsSimtime(t).String()

	var tv unix.Timeval
	if bridge.ToTimeval(raw, &tv) {
		c.Timeval = fmt.Sprintf("{sec: %d, usec: %d}", tv.Sec, tv.Usec)
	}
	var ts unix.Timespec
	if bridge.ToTimespec(raw, &ts) {
		c.Timespec = fmt.Sprintf("{sec: %d, nsec: %d}", ts.Sec, ts.Nsec)
	}
	return c
}

func writeConversion(w io.Writer, c conversion) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	convertCmd.Flags().Uint64Var(&convertRaw, "raw", 0, "Raw simulation time in nanoseconds")
	convertCmd.Flags().Int64SliceVar(&convertTimeval, "timeval", nil, "timeval as SEC,USEC")
	convertCmd.Flags().Int64SliceVar(&convertTimespec, "timespec", nil, "timespec as SEC,NSEC")
}
