// Command lvc-sim runs the cutoff controller on a simulated board.
//
//	lvc-sim -profile tiny5
//	lvc-sim -e "v 150; step; run 6; status"
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"

	"lvc-go/services/config"
)

func main() {
	profile := flag.String("profile", config.DefaultProfile, "embedded config profile")
	script := flag.String("e", "", "run ';'-separated commands and exit")
	flag.Parse()

	p, err := config.Load(*profile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lvc-sim:", err)
		os.Exit(1)
	}

	if *script != "" {
		s, err := newSimulator(os.Stdout, *profile, p.LVC)
		if err != nil {
			fmt.Fprintln(os.Stderr, "lvc-sim:", err)
			os.Exit(1)
		}
		for _, line := range strings.Split(*script, ";") {
			if !s.exec(line) {
				break
			}
		}
		return
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "lvc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, "lvc-sim: readline:", err)
		os.Exit(1)
	}
	defer rl.Close()

	s, err := newSimulator(rl.Stdout(), *profile, p.LVC)
	if err != nil {
		fmt.Fprintln(os.Stderr, "lvc-sim:", err)
		os.Exit(1)
	}
	s.printConfig()
	s.printHelp()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return
		}
		if !s.exec(strings.TrimSpace(line)) {
			return
		}
	}
}
