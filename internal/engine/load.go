package engine

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.btindex/internal/storage"
)

var ErrInvalidInput = errors.New("invalid input")

// LineError is a single rejected line of a bulk load
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d (%q): %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

type LoadResult struct {
	Processed int
	Inserted  int
	Errors    []*LineError
}

// ParseUint reads a decimal unsigned 64-bit integer, surrounding spaces allowed
func ParseUint(s string) (uint64, error) {
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not an unsigned integer", ErrInvalidInput, s)
	}
	return n, nil
}

// ParsePair reads one "key,value" line
func ParsePair(line string) (uint64, uint64, error) {
	parts := strings.Split(strings.TrimSpace(line), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: expected key,value", ErrInvalidInput)
	}

	key, err := ParseUint(parts[0])
	if err != nil {
		return 0, 0, err
	}

	val, err := ParseUint(parts[1])
	if err != nil {
		return 0, 0, err
	}

	return key, val, nil
}

// Longest line Load will parse. Anything longer is consumed and rejected.
const maxLineLen = 4096

// Amount of a rejected long line kept for its LineError
const previewLen = 32

// readLine returns the next line without its terminator. A line over
// maxLineLen is read to its end, returned cut to previewLen and flagged by
// the bool result.
func readLine(br *bufio.Reader) (string, bool, error) {
	var buf []byte
	tooLong := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			return "", false, err
		}

		if !tooLong {
			buf = append(buf, chunk...)
			if len(buf) > maxLineLen {
				tooLong = true
				buf = buf[:previewLen]
			}
		}

		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Load inserts every "key,value" line of r in order. Bad lines, duplicate
// keys and splits the tree cannot take are recorded in the result and the
// load carries on; only I/O failures stop it.
func (idx *Index) Load(r io.Reader) (*LoadResult, error) {
	result := &LoadResult{}
	br := bufio.NewReader(r)
	lineNum := 0

	for {
		raw, tooLong, err := readLine(br)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return result, fmt.Errorf("line %d: %w", lineNum+1, err)
		}
		lineNum++

		if tooLong {
			result.Processed++
			result.Errors = append(result.Errors, &LineError{
				Line: lineNum,
				Text: raw + "...",
				Err:  fmt.Errorf("%w: line longer than %d bytes", ErrInvalidInput, maxLineLen),
			})
			continue
		}

		text := strings.TrimSpace(raw)
		if text == "" {
			continue
		}
		result.Processed++

		key, val, err := ParsePair(text)
		if err != nil {
			result.Errors = append(result.Errors, &LineError{Line: lineNum, Text: text, Err: err})
			continue
		}

		if err := idx.Insert(key, val); err != nil {
			if errors.Is(err, storage.ErrKeyExists) || errors.Is(err, storage.ErrStructuralLimit) {
				result.Errors = append(result.Errors, &LineError{Line: lineNum, Text: text, Err: err})
				continue
			}
			return result, fmt.Errorf("line %d: %w", lineNum, err)
		}
		result.Inserted++
	}

	idx.log.Infof("load into %s: processed %d, inserted %d, rejected %d",
		idx.Path(), result.Processed, result.Inserted, len(result.Errors))
	return result, nil
}
