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


package lsp_test

import (
	"context"
	"encoding/json"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lassandro/gomicro1/pkg/assembler"
	"github.com/lassandro/gomicro1/pkg/logs"
	"github.com/lassandro/gomicro1/pkg/lsp"
)

const broken = "TITLE T\nADD 1\nL 0, NOPE\nHLT\nEND\n"

func assemble(t *testing.T, input string) *assembler.Program {
	program, err := assembler.Assemble(strings.NewReader(input))

	if err != nil {
		t.Fatal(err)
	}

	return program
}

func TestDiagnostics(t *testing.T) {
	have := lsp.Diagnostics(assemble(t, broken))

	want := []lsp.Diagnostic{
		{
			Range: lsp.Range{
				Start: lsp.Position{Line: 1, Character: 5},
				End:   lsp.Position{Line: 1, Character: 6},
			},
			Severity: lsp.SEVERITY_ERROR,
			Source:   "micro1-as",
			Message:  "Required comma.",
		},
		{
			Range: lsp.Range{
				Start: lsp.Position{Line: 2, Character: 5},
				End:   lsp.Position{Line: 2, Character: 9},
			},
			Severity: lsp.SEVERITY_ERROR,
			Source:   "micro1-as",
			Message:  "Undefined reference to `NOPE`",
		},
	}

	if len(have) != len(want) {
		t.Fatalf("Diagnostic count mismatch\nwant:%d\nhave:%d %+v", len(want), len(have), have)
	}

	for i := range want {
		if have[i] != want[i] {
			t.Fatalf("Diagnostic mismatch\nwant:%+v\nhave:%+v", want[i], have[i])
		}
	}
}

func TestDiagnosticsWarning(t *testing.T) {
	have := lsp.Diagnostics(assemble(t, "TITLE T\nORG FFFF\nHLT\nEND\n"))

	want := lsp.Diagnostic{
		Range: lsp.Range{
			Start: lsp.Position{Line: 2, Character: 0},
			End:   lsp.Position{Line: 2, Character: 3},
		},
		Severity: lsp.SEVERITY_WARNING,
		Source:   "micro1-as",
		Message:  "Location counter wraps around to 0000.",
	}

	if len(have) != 1 || have[0] != want {
		t.Fatalf("Diagnostic mismatch\nwant:[%+v]\nhave:%+v", want, have)
	}
}

func TestDescribe(t *testing.T) {
	program := assemble(t, "TITLE T\nORG 100\nHOGE: DC 5\nL 3, HOGE\nBUF: DS 3\nEND\n")

	tests := []struct {
		Line int
		Want string
		OK   bool
	}{
		{0, "", false},
		{1, "", false},
		{2, "`0100`: `0005` (op `0`, a `0`, b `0`, payload `05`)", true},
		{
			3,
			"`0101`: `93FF` (op `9`, a `0`, b `3`, payload `FF`)" +
				"\n\ndisplacement -1, target `0100`",
			true,
		},
		{
			4,
			"`0102`: `0003` (op `0`, a `0`, b `0`, payload `03`)" +
				"\n\nreserves `0102`-`0104`",
			true,
		},
		{42, "", false},
	}

	for _, test := range tests {
		have, ok := lsp.Describe(program, test.Line)

		if ok != test.OK || have != test.Want {
			t.Fatalf(
				"Hover mismatch on line %d\nwant:%v %q\nhave:%v %q",
				test.Line,
				test.OK,
				test.Want,
				ok,
				have,
			)
		}
	}
}

// Collects server notifications on the client side
type client struct {
	published chan lsp.PublishDiagnosticsParams
}

func (c *client) Handle(ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request) {
	if req.Method != "textDocument/publishDiagnostics" || req.Params == nil {
		return
	}

	var params lsp.PublishDiagnosticsParams

	if err := json.Unmarshal(*req.Params, &params); err == nil {
		c.published <- params
	}
}

func (c *client) wait(t *testing.T) lsp.PublishDiagnosticsParams {
	select {
	case params := <-c.published:
		return params
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for diagnostics")
	}

	return lsp.PublishDiagnosticsParams{}
}

func TestServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverSide, clientSide := net.Pipe()

	done := make(chan error, 1)

	go func() {
		done <- lsp.Serve(ctx, serverSide, logs.Discard())
	}()

	c := &client{published: make(chan lsp.PublishDiagnosticsParams, 8)}
	conn := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(clientSide, jsonrpc2.VSCodeObjectCodec{}),
		c,
	)

	defer conn.Close()

	var result lsp.InitializeResult

	if err := conn.Call(ctx, "initialize", lsp.InitializeParams{}, &result); err != nil {
		t.Fatal(err)
	}

	if !result.Capabilities.HoverProvider || result.Capabilities.TextDocumentSync != 1 {
		t.Fatalf("Capability mismatch\nhave:%+v", result.Capabilities)
	}

	const uri = lsp.DocumentURI("file:///prog.asm")

	if err := conn.Notify(ctx, "textDocument/didOpen", lsp.DidOpenTextDocumentParams{
		TextDocument: lsp.TextDocumentItem{URI: uri, Version: 1, Text: broken},
	}); err != nil {
		t.Fatal(err)
	}

	if published := c.wait(t); published.URI != uri || len(published.Diagnostics) != 2 {
		t.Fatalf("Publish mismatch\nwant:%s with 2 diagnostics\nhave:%+v", uri, published)
	}

	if err := conn.Notify(ctx, "textDocument/didChange", lsp.DidChangeTextDocumentParams{
		TextDocument:   lsp.VersionedTextDocumentIdentifier{URI: uri, Version: 2},
		ContentChanges: []lsp.TextDocumentContentChangeEvent{{Text: "TITLE T\nHLT\nEND\n"}},
	}); err != nil {
		t.Fatal(err)
	}

	if published := c.wait(t); published.Version != 2 || len(published.Diagnostics) != 0 {
		t.Fatalf("Publish mismatch\nwant:version 2 without diagnostics\nhave:%+v", published)
	}

	var hover lsp.Hover

	if err := conn.Call(ctx, "textDocument/hover", lsp.TextDocumentPositionParams{
		TextDocument: lsp.TextDocumentIdentifier{URI: uri},
		Position:     lsp.Position{Line: 1, Character: 1},
	}, &hover); err != nil {
		t.Fatal(err)
	}

	if want := "`0000`: `EF00`"; !strings.HasPrefix(hover.Contents.Value, want) {
		t.Fatalf("Hover mismatch\nwant:%s...\nhave:%s", want, hover.Contents.Value)
	}

	if err := conn.Call(ctx, "shutdown", nil, nil); err != nil {
		t.Fatal(err)
	}

	if err := conn.Notify(ctx, "exit", nil); err != nil {
		t.Fatal(err)
	}

	select {
	case err := <-done:
		if err != nil {
			t.Fatal(err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Server did not exit")
	}
}
