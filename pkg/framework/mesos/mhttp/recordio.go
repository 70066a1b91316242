// Copyright (c) 2019 Uber Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package mhttp

import (
	"bufio"
	"io"
	"strconv"

	"github.com/pkg/errors"
)

// maxFrameSize bounds a single RecordIO record.
const maxFrameSize = 64 << 20

var (
	errFrameLength = errors.New("invalid RecordIO frame length")
	errFrameSize   = errors.New("RecordIO frame exceeds maximum size")
)

// recordReader reads RecordIO frames: a decimal length, a newline, then
// exactly that many bytes.
type recordReader struct {
	r *bufio.Reader
}

func newRecordReader(r io.Reader) *recordReader {
	return &recordReader{r: bufio.NewReader(r)}
}

// Next returns the next record.
func (rr *recordReader) Next() ([]byte, error) {
	line, err := rr.r.ReadString('\n')
	if err != nil {
		return nil, err
	}
	framelen, err := strconv.ParseUint(line[:len(line)-1], 10, 64)
	if err != nil || framelen < 1 {
		return nil, errFrameLength
	}
	if framelen > maxFrameSize {
		return nil, errFrameSize
	}
	buf := make([]byte, framelen)
	if _, err := io.ReadFull(rr.r, buf); err != nil {
		return nil, errors.Wrap(err, "failed to read full frame")
	}
	return buf, nil
}
