// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.


package main

import (
	"bufio"
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sample = `TITLE SAMPLE
START: LC 1, 10
LOOP: ADD 1, 2 (0)
  B LOOP
DATA: DC X"ABCD
END
`

const broken = `TITLE TEST
ADD 1
HLT
END
`

func write(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)

	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}

	return path
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)

	cmd := newRootCommand(strings.NewReader(stdin), stdout, stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()

	return stdout.String(), stderr.String(), err
}

func read(t *testing.T, path string) string {
	content, err := os.ReadFile(path)

	if err != nil {
		t.Fatal(err)
	}

	return string(content)
}

func TestVersion(t *testing.T) {
	for _, flag := range []string{"-v", "--version"} {
		t.Run(flag, func(t *testing.T) {
			stdout, _, err := execute(t, "", flag)

			if err != nil {
				t.Fatal(err)
			}

			want := "   *** MICRO-1 ASSEMBLER (Ver. 1.0.0.0)  ***\n"

			if stdout != want {
				t.Fatalf("Version mismatch\nwant:%q\nhave:%q", want, stdout)
			}
		})
	}
}

func TestHelp(t *testing.T) {
	stdout, _, err := execute(t, "", "--help")

	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(stdout, " Or  : micro1-as <source_code>  (command mode)") {
		t.Fatalf("Usage missing from help\nhave:\n%s", stdout)
	}
}

func TestCommandMode(t *testing.T) {
	source := write(t, "sample.s", sample)

	if _, stderr, err := execute(t, "", source); err != nil {
		t.Fatalf("Unexpected failure: %v\n%s", err, stderr)
	}

	want := "MM SAMPLE\n0000 9D0A\n0001 0102\n0002 E8FF\n0003 ABCD\n"

	if have := read(t, removeExtension(source)+".b"); have != want {
		t.Fatalf("Object mismatch\nwant:\n%s\nhave:\n%s", want, have)
	}

	if _, err := os.Stat(removeExtension(source) + ".a"); err == nil {
		t.Fatal("Listing written without being requested")
	}
}

func TestCommandModeListing(t *testing.T) {
	source := write(t, "sample.s", sample)

	if _, _, err := execute(t, "", "--listing", "--debug", source); err != nil {
		t.Fatal(err)
	}

	listing := read(t, removeExtension(source)+".a")

	if !strings.Contains(listing, "THERE WERE NO ERRORS.") {
		t.Fatalf("Listing mismatch\nhave:\n%s", listing)
	}

	if _, err := os.Stat(removeExtension(source) + debugExt); err != nil {
		t.Fatal(err)
	}
}

func TestCommandModeOut(t *testing.T) {
	source := write(t, "sample.s", sample)
	out := filepath.Join(filepath.Dir(source), "program.obj")

	if _, _, err := execute(t, "", "--out", out, source); err != nil {
		t.Fatal(err)
	}

	if have := read(t, out); !strings.HasPrefix(have, "MM SAMPLE\n") {
		t.Fatalf("Object mismatch\nhave:\n%s", have)
	}
}

func TestCommandModeFailure(t *testing.T) {
	source := write(t, "broken.s", broken)

	_, stderr, err := execute(t, "", source)

	if !errors.Is(err, errFailed) {
		t.Fatalf("Unexpected result\nwant:%v\nhave:%v", errFailed, err)
	}

	if !strings.Contains(stderr, "ADD 1\n") {
		t.Fatalf("Diagnostics missing the offending line\nhave:\n%s", stderr)
	}

	if _, err := os.Stat(removeExtension(source) + ".b"); err == nil {
		t.Fatal("Object file written for a failed assembly")
	}
}

func TestCommandModeMissingFile(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.s")

	_, stderr, err := execute(t, "", missing)

	if !errors.Is(err, errFailed) {
		t.Fatalf("Unexpected result\nwant:%v\nhave:%v", errFailed, err)
	}

	if want := "ERROR: FILE NOT FOUND\n"; stderr != want {
		t.Fatalf("Unexpected message\nwant:%q\nhave:%q", want, stderr)
	}
}

func TestTooManyArguments(t *testing.T) {
	if _, _, err := execute(t, "", "a.s", "b.s"); err == nil {
		t.Fatal("Expected an error for two source files")
	}
}

func TestMissingConfig(t *testing.T) {
	source := write(t, "sample.s", sample)
	missing := filepath.Join(t.TempDir(), "absent.cue")

	if _, _, err := execute(t, "", "--config", missing, source); err == nil {
		t.Fatal("Expected an error for an explicit missing config file")
	}
}

func TestConfigFile(t *testing.T) {
	source := write(t, "sample.s", sample)
	cfg := write(t, "micro1-as.cue", "listing: true\nlistingExt: \".lst\"\n")

	if _, _, err := execute(t, "", "--config", cfg, source); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(removeExtension(source) + ".lst"); err != nil {
		t.Fatal(err)
	}
}

func TestShell(t *testing.T) {
	var assembled []string

	input := "first.s\n\nx\ny\nsecond.s\n\nN\n"
	stdout := new(bytes.Buffer)

	err := shell(
		&linePrompter{bufio.NewReader(strings.NewReader(input)), stdout},
		stdout,
		func(filename string) bool {
			assembled = append(assembled, filename)
			return filename == "first.s"
		},
	)

	if err != nil {
		t.Fatal(err)
	}

	want := banner + "\n" +
		"\n SOURCE FILE NAME ? " +
		"\n START ?" +
		" NORMAL TERMINATION !\n" +
		"\n CONTINUE ? (Y/N):(Y/N):" +
		"\n SOURCE FILE NAME ? " +
		"\n START ?" +
		"\n CONTINUE ? (Y/N):"

	if have := stdout.String(); have != want {
		t.Fatalf("Transcript mismatch\nwant:%q\nhave:%q", want, have)
	}

	if len(assembled) != 2 ||
		assembled[0] != "first.s" || assembled[1] != "second.s" {
		t.Fatalf("Assembled files mismatch\nwant:%v\nhave:%v",
			[]string{"first.s", "second.s"}, assembled)
	}
}

func TestShellEndOfInput(t *testing.T) {
	stdout := new(bytes.Buffer)
	calls := 0

	err := shell(
		&linePrompter{bufio.NewReader(strings.NewReader("a.s\n\n")), stdout},
		stdout,
		func(string) bool { calls++; return false },
	)

	if err != nil {
		t.Fatal(err)
	}

	if calls != 1 {
		t.Fatalf("Assemble call count mismatch\nwant:%v\nhave:%v", 1, calls)
	}
}

func TestInteractiveMode(t *testing.T) {
	source := write(t, "sample.s", sample)

	stdout, _, err := execute(t, source+"\n\nn\n")

	if err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(stdout, " NORMAL TERMINATION !\n") {
		t.Fatalf("Missing termination message\nhave:\n%s", stdout)
	}

	if listing := read(t, removeExtension(source)+".a"); !strings.HasPrefix(
		listing, "               TITLE SAMPLE\n",
	) {
		t.Fatalf("Listing mismatch\nhave:\n%s", listing)
	}
}

func TestInspect(t *testing.T) {
	source := write(t, "sample.s", sample)

	if _, _, err := execute(t, "", "--debug", source); err != nil {
		t.Fatal(err)
	}

	stdout, _, err := execute(t, "", "--inspect", removeExtension(source)+".b")

	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"SAMPLE\n",
		"[0000] 9D0A 0102 E8FF ABCD\n",
		"[0001] 0102  0 01 02  LOOP:  ; 3: LOOP: ADD 1, 2 (0)\n",
	} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("Inspection output missing line\nwant:%q\nhave:\n%s", want, stdout)
		}
	}
}

func TestRemoveExtension(t *testing.T) {
	testCases := []struct{ input, want string }{
		{"prog.s", "prog"},
		{"dir.v1/prog", "dir.v1/prog"},
		{"prog", "prog"},
		{"a.b.c", "a.b"},
	}

	for _, test := range testCases {
		if have := removeExtension(test.input); have != test.want {
			t.Errorf("removeExtension(%q)\nwant:%v\nhave:%v", test.input, test.want, have)
		}
	}
}
