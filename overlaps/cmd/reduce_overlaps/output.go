// Copyright 2010-2024 Google LLC
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ortools-contrib/overlaps/overlaps/go/search"
	"google.golang.org/protobuf/encoding/protojson"
)

const (
	outputText = "text"
	outputJSON = "json"
)

var errInvalidOutput = errors.New("invalid output format")

func checkOutput(format string) error {
	switch format {
	case outputText, outputJSON:
		return nil
	}
	return fmt.Errorf("unknown output format %q, want %q or %q: %w", format, outputText, outputJSON, errInvalidOutput)
}

// formatIntervals returns the intervals in the `[(0, 3), (7, 9)]` form.
func formatIntervals(sol search.Solution) string {
	parts := make([]string, len(sol.Intervals))
	for i, iv := range sol.Intervals {
		parts[i] = iv.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func writeText(w io.Writer, res *search.Response) error {
	for _, sol := range res.Solutions {
		if _, err := fmt.Fprintln(w, formatIntervals(sol)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "Status: %v\nNumber of solutions found: %d\n", res.Status, len(res.Solutions))
	return err
}

func writeJSON(w io.Writer, res *search.Response) error {
	s, err := res.Proto()
	if err != nil {
		return err
	}
	b, err := protojson.MarshalOptions{Multiline: true}.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshaling response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}

func writeResponse(w io.Writer, format string, res *search.Response) error {
	switch format {
	case outputText:
		return writeText(w, res)
	case outputJSON:
		return writeJSON(w, res)
	}
	return checkOutput(format)
}
