package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/google/shlex"

	"lvc-go/services/hal"
	"lvc-go/services/lvc"
	"lvc-go/types"
)

// simulator drives one controller on the host board, one command at a time.
type simulator struct {
	out     io.Writer
	profile string
	raw     types.LVCConfig
	cfg     lvc.Config
	board   *hal.Sim
	ctl     *lvc.Controller
}

func newSimulator(out io.Writer, profile string, raw types.LVCConfig) (*simulator, error) {
	cfg, err := lvc.ConfigFrom(raw)
	if err != nil {
		return nil, err
	}
	board, err := hal.OpenSim(hal.Options{
		SampleBits:   uint8(raw.SampleBits),
		TickMs:       raw.TickMs,
		Subdivisions: raw.Subdivisions,
	})
	if err != nil {
		return nil, err
	}
	s := &simulator{out: out, profile: profile, raw: raw, cfg: cfg, board: board}
	s.ctl, err = lvc.New(cfg, board.Hardware(), lvc.Options{OnTransition: s.printTransition})
	if err != nil {
		return nil, err
	}
	// Start from a healthy battery.
	board.SetSample(cfg.Thresholds.NoLoad)
	return s, nil
}

// exec runs one command line. It reports false when the session should end.
func (s *simulator) exec(line string) bool {
	args, err := shlex.Split(line)
	if err != nil {
		fmt.Fprintln(s.out, "parse error:", err)
		return true
	}
	if len(args) == 0 {
		return true
	}
	cmd, args := strings.ToLower(args[0]), args[1:]

	switch cmd {
	case "help", "?":
		s.printHelp()
	case "v", "sample":
		s.cmdSample(args)
	case "tick", "t":
		s.board.Tick(count(s.out, args))
	case "step", "s":
		for i := count(s.out, args); i > 0; i-- {
			s.stepOnce()
		}
	case "run", "r":
		// One control cycle per tick, as the firmware loop paced by the
		// poll interval would see it.
		for i := count(s.out, args); i > 0 && s.ctl.State() != lvc.StateShutdown; i-- {
			s.stepOnce()
			s.board.Tick(1)
		}
	case "status", "st":
		s.printStatus()
	case "config", "cfg":
		s.printConfig()
	case "quit", "exit", "q":
		return false
	default:
		fmt.Fprintf(s.out, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return true
}

func (s *simulator) cmdSample(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(s.out, "usage: v <sample>")
		return
	}
	v, err := strconv.ParseUint(args[0], 0, 16)
	if err != nil {
		fmt.Fprintln(s.out, "bad sample:", err)
		return
	}
	s.board.SetSample(lvc.Sample(v))
}

func (s *simulator) stepOnce() {
	if tr := s.ctl.Step(); !tr.Changed() && tr.Sampled {
		fmt.Fprintf(s.out, "  %s sample=%d dwell=%d\n", tr.To, tr.Sample, tr.Dwell)
	}
}

func (s *simulator) printTransition(tr lvc.Transition) {
	fmt.Fprintf(s.out, "* %s -> %s (%s) sample=%d dwell=%d cycles=%d\n",
		tr.From, tr.To, tr.Reason, tr.Sample, tr.Dwell, tr.Cycles)
}

func (s *simulator) printStatus() {
	st := s.ctl.Status()
	fmt.Fprintf(s.out, "state=%s cycles=%d/%d load=%s elapsed=%d",
		st.State, st.Cycles, s.cfg.MaxCycles, onOff(st.LoadConnected), s.board.Clock.Elapsed())
	if st.State == lvc.StateCutoffPending {
		fmt.Fprintf(s.out, " since=%d", st.CutoffStart)
	}
	fmt.Fprintf(s.out, " regulator=%s halted=%t\n", onOff(s.board.Regulator()), s.board.Halted())
}

func (s *simulator) printConfig() {
	fmt.Fprintf(s.out, "profile=%s load<%d recover>=%d timeout=%d ticks max_cycles=%d tick=%dms\n",
		s.profile, s.cfg.Thresholds.Load, s.cfg.Thresholds.NoLoad, s.cfg.Timeout, s.cfg.MaxCycles,
		s.board.Clock.Period().Milliseconds()*int64(max(s.raw.Subdivisions, 1)))
}

func (s *simulator) printHelp() {
	fmt.Fprintln(s.out, `
LVC Simulator Commands:
  v <sample>     - Set the voltage reading (native units)
  tick [n]       - Advance the time base by n ticks
  step [n]       - Run n control cycles without advancing time
  run [n]        - Run n cycles, one tick apart, stopping at shutdown
  status         - Show controller and board state
  config         - Show the active profile
  help           - Show this help
  quit           - Exit`)
}

func count(out io.Writer, args []string) int {
	if len(args) == 0 {
		return 1
	}
	n, err := strconv.Atoi(args[0])
	if err != nil || n < 1 {
		fmt.Fprintln(out, "bad count:", args[0])
		return 0
	}
	return n
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
