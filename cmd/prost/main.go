// Copyright (C) 2024-2026, prost-go authors. All rights reserved.
// See the file LICENSE for licensing terms.

// Command prost is the planner driver: it reads a binary task
// description, parses an engine descriptor (§6), assembles the
// corresponding search engine, and runs it to produce a policy.
//
// Flag parsing is intentionally minimal (an explicit Non-goal, §1):
// this file owns only the handful of top-level flags the descriptor
// grammar itself doesn't cover (-s seed, -ram, §6 SUPPLEMENTED
// FEATURES), plus the task-file path. The bracketed `[SE ...]`
// descriptor is the command's sole positional argument and is handed
// unparsed to the cli package.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prost-go/prost"
	"github.com/prost-go/prost/cli"
	"github.com/prost-go/prost/config"
	"github.com/prost-go/prost/engine"
	"github.com/prost-go/prost/log"
	"github.com/prost-go/prost/metrics"
	"github.com/prost-go/prost/task"
	"github.com/prost-go/prost/taskio"
	"github.com/prost-go/prost/thts"
	"github.com/prost-go/prost/watchdog"
)

func main() {
	taskPath := flag.String("task", "", "path to the binary task description (taskio format)")
	seed := flag.Int64("s", 0, "PRNG seed; 0 draws entropy from the clock")
	ramLimitKB := flag.Int("ram", 0, "resident memory limit in KB before caching is disabled; 0 disables monitoring")
	flag.Parse()

	descriptor := flag.Arg(0)
	if *taskPath == "" || descriptor == "" {
		fmt.Fprintln(os.Stderr, "usage: prost -task <file> \"[SE -flag value ...]\"")
		os.Exit(1)
	}

	if err := run(*taskPath, descriptor, *seed, *ramLimitKB); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run(taskPath, descriptor string, seed int64, ramLimitKB int) error {
	logger := log.New("cmd")

	f, err := os.Open(taskPath)
	if err != nil {
		return prost.WrapTask(err, taskPath)
	}
	defer f.Close()

	doc, err := taskio.Read(f)
	if err != nil {
		return err
	}
	tk := doc.Task

	params, err := cli.Build(descriptor)
	if err != nil {
		return err
	}

	st := prost.NewEngineState(seed)

	eng, err := config.Assemble(params, tk, st)
	if err != nil {
		return err
	}

	m, err := metrics.New(prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if ramLimitKB > 0 {
		wd := watchdog.New(watchdog.NewProcReader(), tk, ramLimitKB, time.Second, logger)
		go wd.Run(ctx)
	}

	return rollout(eng, tk, st, m, logger)
}

// rollout runs the assembled engine against its own task's transition
// model for one episode, step by step, logging the chosen action at
// each step. The simulator protocol itself is out of scope (§1); a
// real simclient.Session plugs into this same per-step shape (observe
// state, choose action, submit, observe successor) once one exists.
func rollout(eng engine.SearchEngine, tk *task.Task, st *prost.EngineState, m *metrics.Metrics, logger log.Logger) error {
	s := tk.InitialState
	expandedSoFar := 0
	for step := 0; s.StepsToGo > 0; step++ {
		applicable := tk.ApplicableActions(s)

		start := time.Now()
		q := eng.EstimateQValues(s, applicable)
		m.ObserveSearchDuration(float64(time.Since(start).Milliseconds()))

		if root, ok := eng.(*thts.THTS); ok {
			m.AddTrials(root.TrialsThisStep)
			m.AddNodesExpanded(root.TipNodesExpandedTotal - expandedSoFar)
			expandedSoFar = root.TipNodesExpandedTotal
		}

		best := engine.EstimateBestActions(q)
		if len(best) == 0 {
			return prost.ErrMissingIngredient
		}
		action := best[st.RNG.Intn(len(best))]

		reward := tk.Reward(s, action)
		logger.Info("step", "step", step, "action", action, "reward", reward, "stepsToGo", s.StepsToGo)

		s = tk.CalcSuccessorState(s, action, st.RNG)
	}
	return nil
}
