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


package lsp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/sourcegraph/jsonrpc2"

	"github.com/lassandro/gomicro1/pkg/assembler"
)

const Name = "micro1-as"

type document struct {
	Version int
	Text    string
	Program *assembler.Program
}

type server struct {
	logger *slog.Logger

	mutex     sync.Mutex
	documents map[DocumentURI]*document
}

// Speaks JSON-RPC 2.0 with VSCode framing over rwc until the client exits,
// the stream closes or ctx is cancelled
func Serve(ctx context.Context, rwc io.ReadWriteCloser, logger *slog.Logger) error {
	srv := &server{
		logger:    logger,
		documents: make(map[DocumentURI]*document),
	}

	conn := jsonrpc2.NewConn(
		ctx,
		jsonrpc2.NewBufferedStream(rwc, jsonrpc2.VSCodeObjectCodec{}),
		jsonrpc2.HandlerWithError(srv.handle).SuppressErrClosed(),
		jsonrpc2.SetLogger(slog.NewLogLogger(logger.Handler(), slog.LevelWarn)),
	)

	select {
	case <-conn.DisconnectNotify():
		return nil
	case <-ctx.Done():
		conn.Close()
		return ctx.Err()
	}
}

func invalidParams(err error) error {
	return &jsonrpc2.Error{Code: jsonrpc2.CodeInvalidParams, Message: err.Error()}
}

func decode(req *jsonrpc2.Request, params any) error {
	if req.Params == nil {
		return &jsonrpc2.Error{
			Code: jsonrpc2.CodeInvalidParams, Message: "missing parameters",
		}
	}

	if err := json.Unmarshal(*req.Params, params); err != nil {
		return invalidParams(err)
	}

	return nil
}

func (srv *server) handle(
	ctx context.Context, conn *jsonrpc2.Conn, req *jsonrpc2.Request,
) (any, error) {
	srv.logger.Debug("lsp request", "method", req.Method, "notification", req.Notif)

	switch req.Method {
	case "initialize":
		var params InitializeParams

		if err := decode(req, &params); err != nil {
			return nil, err
		}

		return InitializeResult{
			Capabilities: ServerCapabilities{
				TextDocumentSync: 1,
				HoverProvider:    true,
			},
			ServerInfo: ServerInfo{Name: Name},
		}, nil

	case "initialized":
		return nil, nil

	case "textDocument/didOpen":
		var params DidOpenTextDocumentParams

		if err := decode(req, &params); err != nil {
			return nil, err
		}

		item := params.TextDocument

		return nil, srv.update(ctx, conn, item.URI, item.Version, item.Text)

	case "textDocument/didChange":
		var params DidChangeTextDocumentParams

		if err := decode(req, &params); err != nil {
			return nil, err
		}

		if len(params.ContentChanges) == 0 {
			return nil, nil
		}

		// Full sync: the last change holds the complete text
		text := params.ContentChanges[len(params.ContentChanges)-1].Text
		id := params.TextDocument

		return nil, srv.update(ctx, conn, id.URI, id.Version, text)

	case "textDocument/didClose":
		var params DidCloseTextDocumentParams

		if err := decode(req, &params); err != nil {
			return nil, err
		}

		srv.mutex.Lock()
		delete(srv.documents, params.TextDocument.URI)
		srv.mutex.Unlock()

		// Clear stale markers in the client
		return nil, conn.Notify(
			ctx,
			"textDocument/publishDiagnostics",
			PublishDiagnosticsParams{
				URI:         params.TextDocument.URI,
				Diagnostics: []Diagnostic{},
			},
		)

	case "textDocument/hover":
		var params TextDocumentPositionParams

		if err := decode(req, &params); err != nil {
			return nil, err
		}

		srv.mutex.Lock()
		doc, exists := srv.documents[params.TextDocument.URI]
		srv.mutex.Unlock()

		if !exists {
			return nil, nil
		}

		text, ok := Describe(doc.Program, params.Position.Line)

		if !ok {
			return nil, nil
		}

		return Hover{Contents: MarkupContent{Kind: "markdown", Value: text}}, nil

	case "shutdown":
		return nil, nil

	case "exit":
		return nil, conn.Close()
	}

	if req.Notif {
		return nil, nil
	}

	return nil, &jsonrpc2.Error{
		Code: jsonrpc2.CodeMethodNotFound, Message: "method not supported: " + req.Method,
	}
}

// Reassembles a document and publishes its diagnostics
func (srv *server) update(
	ctx context.Context,
	conn *jsonrpc2.Conn,
	uri DocumentURI,
	version int,
	text string,
) error {
	program, err := assembler.Assemble(strings.NewReader(text))

	if err != nil {
		srv.logger.Warn("assemble document", "uri", uri, "error", err)
		return err
	}

	srv.mutex.Lock()
	srv.documents[uri] = &document{version, text, program}
	srv.mutex.Unlock()

	diagnostics := Diagnostics(program)

	srv.logger.Debug(
		"publish diagnostics", "uri", uri, "version", version, "count", len(diagnostics),
	)

	return conn.Notify(
		ctx,
		"textDocument/publishDiagnostics",
		PublishDiagnosticsParams{
			URI:         uri,
			Version:     version,
			Diagnostics: diagnostics,
		},
	)
}
