// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/bitmark-inc/dbhasher/digest"
	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/rehash"
	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/logger"
)

const (
	defaultGeneratePartitions = 4
	defaultGenerateEntries    = 100

	progressInterval = 10 * time.Second
)

// setup command handler
//
// commands that do not access the database or the configuration file
func processSetupCommand(program string, arguments []string) bool {

	command := "help"
	if len(arguments) > 0 {
		command = arguments[0]
	}

	switch command {

	case "run", "start", "list", "ls", "generate", "gen":
		return false // continue processing

	case "version", "v":
		fmt.Printf("%s\n", version)

	default:
		switch command {
		case "help", "h", "?":
		case "", " ":
			fmt.Printf("error: missing command\n")
		default:
			fmt.Printf("error: no such command: %q\n", command)
		}
		fmt.Printf("usage: %s [--help] [--verbose] [--quiet] [--threads=N] --config-file=FILE [[command|help] arguments...]\n", program)

		fmt.Printf("supported commands:\n\n")
		fmt.Printf("  help                       (h)      - display this message\n\n")
		fmt.Printf("  version                    (v)      - display version sting\n\n")

		fmt.Printf("  run                        (start)  - replace every value by its digest, same as no arguments\n")
		fmt.Printf("\n")

		fmt.Printf("  list                       (ls)     - list the partitions of the database\n")
		fmt.Printf("\n")

		fmt.Printf("  generate [N [M]]           (gen)    - add N partitions of M random entries\n")
		fmt.Printf("                                        defaults: N=%d  M=%d\n", defaultGeneratePartitions, defaultGenerateEntries)
		fmt.Printf("\n")

		fmt.Printf("supported algorithms: %v\n", digest.Algorithms())
		fmt.Printf("supported engines:    %v\n", []storage.Engine{storage.LevelDB, storage.Pebble, storage.Bolt})

		exitwithstatus.Exit(1)
	}

	// indicate processing complete and preform normal exit from main
	return true
}

// data command handler
//
// the database is opened by each command as needed
func processDataCommand(log *logger.L, arguments []string, options *Configuration, verbose bool) {

	command := "run"
	if len(arguments) > 0 {
		command = arguments[0]
		arguments = arguments[1:]
	}

	engine := storage.Engine(options.Database.Engine)
	path := options.Database.Name

	switch command {

	case "list", "ls":
		names, err := storage.ListPartitions(engine, path)
		if nil != err {
			log.Criticalf("list partitions error: %s", err)
			exitwithstatus.Message("list partitions: %q  error: %s", path, err)
		}
		for _, name := range names {
			fmt.Printf("%s\n", name)
		}

	case "generate", "gen":
		partitions, err := getCount(arguments, 0, defaultGeneratePartitions)
		if nil != err {
			exitwithstatus.Message("partition count error: %s", err)
		}
		entries, err := getCount(arguments, 1, defaultGenerateEntries)
		if nil != err {
			exitwithstatus.Message("entry count error: %s", err)
		}

		store, err := storage.Create(engine, path)
		if nil != err {
			log.Criticalf("create database error: %s", err)
			exitwithstatus.Message("create database: %q  error: %s", path, err)
		}
		defer store.Close()

		handles, err := generate(logger.New("generate"), store, partitions, entries, options.Threads)
		if nil != err {
			log.Criticalf("generate error: %s", err)
			exitwithstatus.Message("generate error: %s", err)
		}
		if verbose {
			for _, h := range handles {
				fmt.Printf("created partition: %s\n", h)
			}
		}

	case "run", "start":
		report, err := runRehash(log, engine, path, options)
		if nil != err && nil == report {
			exitwithstatus.Message("rehash error: %s", err)
		}
		if verbose {
			fmt.Printf("partitions: %d  workers: %d  writes: %d\n", len(report.Outcomes), report.Workers(), report.Writes())
			for _, o := range report.Failed() {
				fmt.Printf("failed: %s  error: %s\n", o.Partition, o.Err)
			}
		}
		if nil != err {
			exitwithstatus.Message("rehash error: %s", err)
		}

	default:
		exitwithstatus.Message("error: no such command: %q", command)
	}
}

// open the store, rehash every partition and close the store
//
// SIGINT or SIGTERM stops further partitions being claimed
func runRehash(log *logger.L, engine storage.Engine, path string, options *Configuration) (*rehash.Report, error) {

	names, err := storage.ListPartitions(engine, path)
	if nil != err {
		log.Criticalf("list partitions error: %s", err)
		return nil, err
	}
	log.Infof("partitions: %q", names)

	store, err := storage.Open(engine, path, names)
	if nil != err {
		log.Criticalf("storage open error: %s", err)
		return nil, err
	}
	defer store.Close()

	hasher, err := digest.New(options.Algorithm)
	if nil != err {
		return nil, err
	}

	pool, err := rehash.New(store, rehash.Options{
		Threads:         options.Threads,
		Hasher:          hasher,
		WritesPerSecond: options.WritesPerSecond,
	})
	if nil != err {
		return nil, err
	}

	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(ch)

	done := make(chan struct{})
	defer close(done)

	go func() {
		ticker := time.NewTicker(progressInterval)
		defer ticker.Stop()
	loop:
		for {
			select {
			case sig := <-ch:
				log.Warnf("received signal: %v  stopping after current partitions", sig)
				pool.Stop()
				break loop
			case <-ticker.C:
				log.Infof("written: %d", pool.Written())
			case <-done:
				break loop
			}
		}
	}()

	return pool.Run()
}

// optional positive integer argument
func getCount(arguments []string, index int, defaultValue int) (int, error) {
	if len(arguments) <= index {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(arguments[index])
	if nil != err {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("count: %d  error: %w", n, fault.ErrInvalidCount)
	}
	return n, nil
}
