// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package util

import (
	"os"
	"path/filepath"

	"github.com/bitmark-inc/dbhasher/fault"
)

// EnsureAbsolute - ensure the path is absolute
// if not, prepend the directory to make absolute path
func EnsureAbsolute(directory string, filePath string) string {
	if !filepath.IsAbs(filePath) {
		filePath = filepath.Join(directory, filePath)
	}
	return filepath.Clean(filePath)
}

// DataDirectory - resolve the configured data directory
//
// "." means the directory containing the configuration file and the
// result must be an existing directory
func DataDirectory(configured string, configurationFile string) (string, error) {
	var directory string
	switch configured {
	case "", "~":
		return "", fault.ErrInvalidDataDirectory
	case ".":
		directory = filepath.Dir(configurationFile)
	default:
		directory = filepath.Clean(configured)
	}

	fileInfo, err := os.Stat(directory)
	if nil != err {
		return "", err
	}
	if !fileInfo.IsDir() {
		return "", fault.ErrNotADirectory
	}
	return directory, nil
}

// PlainName - place a plain file name in a directory
//
// names containing a path separator are rejected
func PlainName(directory string, name string) (string, error) {
	switch filepath.Dir(name) {
	case "", ".":
	default:
		return "", fault.ErrNotPlainName
	}
	if "" == name || "." == name {
		return "", fault.ErrNotPlainName
	}
	return EnsureAbsolute(directory, name), nil
}
