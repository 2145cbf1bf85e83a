//go:build linux

package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hostsim/hostsim/sim/descriptor"
	"github.com/hostsim/hostsim/sim/simtime"
	"github.com/hostsim/hostsim/sim/syscalls"
)

var sysinfoAt string // Simulated time since start, e.g. 90m

// sysinfoReport mirrors the fields of struct sysinfo an application reads.
type sysinfoReport struct {
	Uptime    int64     `yaml:"uptime"`
	Loads     [3]uint64 `yaml:"loads"`
	TotalRAM  uint64    `yaml:"totalram"`
	FreeRAM   uint64    `yaml:"freeram"`
	SharedRAM uint64    `yaml:"sharedram"`
	BufferRAM uint64    `yaml:"bufferram"`
	TotalSwap uint64    `yaml:"totalswap"`
	FreeSwap  uint64    `yaml:"freeswap"`
	Procs     uint16    `yaml:"procs"`
	TotalHigh uint64    `yaml:"totalhigh"`
	FreeHigh  uint64    `yaml:"freehigh"`
	Unit      uint32    `yaml:"mem_unit"`
}

// fixedClock reports one instant forever.
type fixedClock simtime.EmulatedTime

func (c fixedClock) CurrentTime() (simtime.EmulatedTime, bool) {
	return simtime.EmulatedTime(c), true
}

// sysinfoCmd prints what sysinfo(2) returns inside the simulation at --at.
var sysinfoCmd = &cobra.Command{
	Use:   "sysinfo",
	Short: "Print the fabricated sysinfo struct at a simulated time",
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := sysinfoAtTime(sysinfoAt)
		if err != nil {
			return err
		}
		return writeSysinfo(cmd.OutOrStdout(), report)
	},
}

func sysinfoAtTime(at string) (sysinfoReport, error) {
	d, err := time.ParseDuration(at)
	if err != nil {
		return sysinfoReport{}, fmt.Errorf("--at: %w", err)
	}
	t, err := simtime.FromStd(d)
	if err != nil {
		return sysinfoReport{}, fmt.Errorf("--at: %w", err)
	}

	clock := fixedClock(simtime.EmulatedFromAbsSimtime(t))
	h := syscalls.NewHandler(clock, descriptor.NewTable(), nil)
	info := h.Sysinfo()
	return sysinfoReport{
		Uptime:    int64(info.Uptime),
		Loads:     [3]uint64{uint64(info.Loads[0]), uint64(info.Loads[1]), uint64(info.Loads[2])},
		TotalRAM:  uint64(info.Totalram),
		FreeRAM:   uint64(info.Freeram),
		SharedRAM: uint64(info.Sharedram),
		BufferRAM: uint64(info.Bufferram),
		TotalSwap: uint64(info.Totalswap),
		FreeSwap:  uint64(info.Freeswap),
		Procs:     info.Procs,
		TotalHigh: uint64(info.Totalhigh),
		FreeHigh:  uint64(info.Freehigh),
		Unit:      info.Unit,
	}, nil
}

func writeSysinfo(w io.Writer, r sysinfoReport) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	sysinfoCmd.Flags().StringVar(&sysinfoAt, "at", "0s", "Simulated time since the start of the simulation")
}
