// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"path/filepath"

	"github.com/bitmark-inc/dbhasher/configuration"
	"github.com/bitmark-inc/dbhasher/digest"
	"github.com/bitmark-inc/dbhasher/fault"
	"github.com/bitmark-inc/dbhasher/storage"
	"github.com/bitmark-inc/dbhasher/util"
	"github.com/bitmark-inc/logger"
)

// basic defaults (directories and files are relative to the "DataDirectory" from Configuration file)
const (
	defaultDataDirectory = "" // this will error; use "." for the same directory as the config file

	defaultDatabaseName = "hash.leveldb"
	defaultThreads      = 4

	defaultLogDirectory = "log"
	defaultLogFile      = "dbhash.log"
	defaultLogCount     = 10          //  number of log files retained
	defaultLogSize      = 1024 * 1024 // rotate when <logfile> exceeds this size
)

// to hold log levels
type LoglevelMap map[string]string

// path expanded or calculated defaults
var (
	defaultLogLevels = LoglevelMap{
		logger.DefaultTag: "critical",
	}
)

type DatabaseType struct {
	Engine string `gluamapper:"engine" json:"engine"`
	Name   string `gluamapper:"name" json:"name"`
}

type Configuration struct {
	DataDirectory   string               `gluamapper:"data_directory" json:"data_directory"`
	Database        DatabaseType         `gluamapper:"database" json:"database"`
	Threads         int                  `gluamapper:"threads" json:"threads"`
	Algorithm       string               `gluamapper:"algorithm" json:"algorithm"`
	WritesPerSecond int                  `gluamapper:"writes_per_second" json:"writes_per_second"`
	Logging         logger.Configuration `gluamapper:"logging" json:"logging"`
}

// will read decode and verify the configuration
func getConfiguration(configurationFileName string) (*Configuration, error) {

	configurationFileName, err := filepath.Abs(filepath.Clean(configurationFileName))
	if nil != err {
		return nil, err
	}

	// the mapper writes into an existing map
	levels := make(LoglevelMap)
	for k, v := range defaultLogLevels {
		levels[k] = v
	}

	options := &Configuration{

		DataDirectory: defaultDataDirectory,
		Threads:       defaultThreads,
		Algorithm:     digest.Default,

		Database: DatabaseType{
			Engine: string(storage.LevelDB),
			Name:   defaultDatabaseName,
		},

		Logging: logger.Configuration{
			Directory: defaultLogDirectory,
			File:      defaultLogFile,
			Size:      defaultLogSize,
			Count:     defaultLogCount,
			Levels:    levels,
		},
	}

	if err := configuration.ParseConfigurationFile(configurationFileName, options); err != nil {
		return nil, err
	}

	if options.Threads < 1 {
		return nil, fault.ErrInvalidThreadCount
	}

	engine, err := storage.ParseEngine(options.Database.Engine)
	if nil != err {
		return nil, fmt.Errorf("engine: %q  error: %w", options.Database.Engine, err)
	}
	options.Database.Engine = string(engine)

	// normalise the name, fail early if not supported
	h, err := digest.New(options.Algorithm)
	if nil != err {
		return nil, fmt.Errorf("algorithm: %q  error: %w", options.Algorithm, err)
	}
	options.Algorithm = h.Algorithm()

	if options.WritesPerSecond < 0 {
		options.WritesPerSecond = 0
	}

	// this directory must exist - i.e. must be created prior to running
	dataDirectory, err := util.DataDirectory(options.DataDirectory, configurationFileName)
	if nil != err {
		return nil, fmt.Errorf("data directory: %q  error: %w", options.DataDirectory, err)
	}
	options.DataDirectory = dataDirectory

	// force all relevant items to be absolute paths
	// if not, assign them to the data directory
	options.Logging.Directory = util.EnsureAbsolute(options.DataDirectory, options.Logging.Directory)

	// fail if any of these are not simple file names
	databasePath, err := util.PlainName(options.DataDirectory, options.Database.Name)
	if nil != err {
		return nil, fmt.Errorf("database: %q  error: %w", options.Database.Name, err)
	}
	options.Database.Name = databasePath
	if _, err := util.PlainName(options.Logging.Directory, options.Logging.File); nil != err {
		return nil, fmt.Errorf("log file: %q  error: %w", options.Logging.File, err)
	}

	return options, nil
}
