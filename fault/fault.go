// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

import (
	"errors"
)

// GenericError - error base
type GenericError string

// to allow for different classes of errors
type ExistsError GenericError
type InvalidError GenericError
type NotFoundError GenericError
type ProcessError GenericError
type RecordError GenericError

// common errors - keep in alphabetic order
var (
	ErrAlreadyStarted         = ProcessError("already started")
	ErrCatalogueRecordCorrupt = RecordError("catalogue record is corrupt")
	ErrConfigurationNotTable  = InvalidError("configuration did not return a table")
	ErrDatabaseNotFound       = NotFoundError("database not found")
	ErrInvalidAlgorithm       = InvalidError("invalid hash algorithm")
	ErrInvalidDataDirectory   = InvalidError("invalid data directory")
	ErrInvalidCount           = InvalidError("invalid count")
	ErrInvalidEngine          = InvalidError("invalid storage engine")
	ErrInvalidHandle          = InvalidError("invalid partition handle")
	ErrInvalidPartitionName   = InvalidError("invalid partition name")
	ErrInvalidStructPointer   = InvalidError("invalid struct pointer")
	ErrInvalidThreadCount     = InvalidError("invalid thread count")
	ErrNotADirectory          = InvalidError("not a directory")
	ErrNotPlainName           = InvalidError("not a plain file name")
	ErrPartitionExists        = ExistsError("partition already exists")
	ErrPartitionNotFound      = NotFoundError("partition not found")
	ErrPartitionSkipped       = ProcessError("partition was not processed")
	ErrPartitionsFailed       = ProcessError("one or more partitions failed")
	ErrQueueClosed            = ProcessError("work queue is closed")
	ErrStoreClosed            = ProcessError("store is closed")
)

// the error interface methods
func (e GenericError) Error() string  { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }
func (e RecordError) Error() string   { return string(e) }

// determine the class of an error, including wrapped errors
func IsErrExists(e error) bool   { var t ExistsError; return errors.As(e, &t) }
func IsErrInvalid(e error) bool  { var t InvalidError; return errors.As(e, &t) }
func IsErrNotFound(e error) bool { var t NotFoundError; return errors.As(e, &t) }
func IsErrProcess(e error) bool  { var t ProcessError; return errors.As(e, &t) }
func IsErrRecord(e error) bool   { var t RecordError; return errors.As(e, &t) }
