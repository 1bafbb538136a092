package repository

import "errors"

// TableVersion is the only value table layout this build reads and writes.
const TableVersion = 1

var ErrCorruptTable = errors.New("corrupt value table")
