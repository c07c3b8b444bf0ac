// Package lsp implements a language server for minml over stdin/stdout.
// Every document edit is re-parsed and re-inferred; diagnostics are pushed
// and hover answers with the inferred type under the cursor.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"minml/pkg/ast"
	"minml/pkg/minml"
	"minml/pkg/token"

	"github.com/sourcegraph/go-lsp"
)

// Server represents the language server.
type Server struct {
	in     io.Reader
	out    io.Writer
	logger *log.Logger

	mu   sync.Mutex
	enc  *json.Encoder
	docs map[lsp.DocumentURI]*document
}

type document struct {
	text     string
	root     ast.Expr
	inferrer *minml.Inferrer
}

// NewServer creates a new language server instance reading requests from in
// and writing responses to out.
func NewServer(in io.Reader, out io.Writer) *Server {
	return &Server{
		in:     in,
		out:    out,
		logger: log.New(os.Stderr, "[minml-lsp] ", log.LstdFlags),
		docs:   make(map[lsp.DocumentURI]*document),
	}
}

// Initialize handles the initialize request.
func (s *Server) Initialize(ctx context.Context, params lsp.InitializeParams) (*lsp.InitializeResult, error) {
	s.logger.Printf("Initializing language server for %s", params.RootURI)
	syncKind := lsp.TDSKFull
	return &lsp.InitializeResult{
		Capabilities: lsp.ServerCapabilities{
			TextDocumentSync: &lsp.TextDocumentSyncOptionsOrKind{Kind: &syncKind},
			HoverProvider:    true,
		},
	}, nil
}

// Shutdown handles the shutdown request.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Println("Shutting down language server")
	return nil
}

// DidOpen handles the textDocument/didOpen notification.
func (s *Server) DidOpen(ctx context.Context, params lsp.DidOpenTextDocumentParams) error {
	return s.analyze(params.TextDocument.URI, params.TextDocument.Text)
}

// DidChange handles the textDocument/didChange notification. The server
// advertises full sync, so the last content change carries the whole text.
func (s *Server) DidChange(ctx context.Context, params lsp.DidChangeTextDocumentParams) error {
	if len(params.ContentChanges) == 0 {
		return nil
	}
	text := params.ContentChanges[len(params.ContentChanges)-1].Text
	return s.analyze(params.TextDocument.URI, text)
}

// DidClose handles the textDocument/didClose notification.
func (s *Server) DidClose(ctx context.Context, params lsp.DidCloseTextDocumentParams) error {
	s.mu.Lock()
	delete(s.docs, params.TextDocument.URI)
	s.mu.Unlock()
	return nil
}

// Hover handles the textDocument/hover request.
func (s *Server) Hover(ctx context.Context, params lsp.TextDocumentPositionParams) (*lsp.Hover, error) {
	s.mu.Lock()
	doc := s.docs[params.TextDocument.URI]
	s.mu.Unlock()
	if doc == nil || doc.root == nil {
		return &lsp.Hover{}, nil
	}
	pos := token.Pos{Row: params.Position.Line + 1, Col: params.Position.Character + 1}
	t, node, ok := doc.inferrer.TypeAt(doc.root, pos)
	if !ok {
		return &lsp.Hover{}, nil
	}
	r := nodeRange(node)
	return &lsp.Hover{
		Contents: []lsp.MarkedString{{Language: "minml", Value: t.String()}},
		Range:    &r,
	}, nil
}

// analyze re-parses and re-infers a document and publishes its diagnostics.
func (s *Server) analyze(uri lsp.DocumentURI, text string) error {
	doc := &document{text: text}
	var diagnostics []lsp.Diagnostic

	root, err := minml.ParseSrc(text)
	if err == nil {
		doc.root = root
		doc.inferrer = minml.NewInferrer(minml.NewEnv())
		_, _, err = doc.inferrer.Infer(root)
	}
	if err != nil {
		diagnostics = append(diagnostics, lsp.Diagnostic{
			Range:    rangeOf(err),
			Severity: lsp.Error,
			Source:   "minml",
			Message:  err.Error(),
		})
	}

	s.mu.Lock()
	s.docs[uri] = doc
	s.mu.Unlock()

	// The protocol requires an empty array, not null, to clear diagnostics.
	if diagnostics == nil {
		diagnostics = []lsp.Diagnostic{}
	}
	return s.notify("textDocument/publishDiagnostics", lsp.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func nodeRange(n ast.Expr) lsp.Range {
	return lsp.Range{
		Start: lsp.Position{Line: n.Pos().Row - 1, Character: n.Pos().Col - 1},
		End:   lsp.Position{Line: n.End().Row - 1, Character: n.End().Col - 1},
	}
}

// rangeOf extracts a source range from positioned errors; type errors carry
// no position and map to the start of the document.
func rangeOf(err error) lsp.Range {
	var pos token.Pos
	var syntaxErr *minml.SyntaxError
	var unboundErr *minml.UnboundVariableError
	switch {
	case errors.As(err, &syntaxErr):
		pos = syntaxErr.Pos
	case errors.As(err, &unboundErr):
		pos = unboundErr.Pos
	}
	if !pos.IsValid() {
		return lsp.Range{}
	}
	p := lsp.Position{Line: pos.Row - 1, Character: pos.Col - 1}
	return lsp.Range{Start: p, End: lsp.Position{Line: p.Line, Character: p.Character + 1}}
}

func (s *Server) notify(method string, params interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(notificationMessage{JSONRPC: "2.0", Method: method, Params: params})
}

func (s *Server) respond(id, result interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(responseMessage{JSONRPC: "2.0", ID: id, Result: result})
}

func (s *Server) respondError(id interface{}, code int, msg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.enc.Encode(responseMessage{JSONRPC: "2.0", ID: id, Error: &responseError{Code: code, Message: msg}})
}

// Run starts the language server and blocks until the client disconnects or
// sends an exit notification.
func (s *Server) Run() error {
	decoder := json.NewDecoder(s.in)
	s.enc = json.NewEncoder(s.out)

	for {
		var request requestMessage
		if err := decoder.Decode(&request); err != nil {
			if err == io.EOF {
				return nil
			}
			return fmt.Errorf("failed to decode message: %w", err)
		}
		if err := s.dispatch(context.Background(), request); err != nil {
			return err
		}
		if request.Method == "exit" {
			s.logger.Println("Exiting language server")
			return nil
		}
	}
}

func (s *Server) dispatch(ctx context.Context, request requestMessage) error {
	switch request.Method {
	case "initialize":
		var params lsp.InitializeParams
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return fmt.Errorf("failed to unmarshal initialize params: %w", err)
		}
		result, err := s.Initialize(ctx, params)
		if err != nil {
			return s.respondError(request.ID, codeInternalError, err.Error())
		}
		return s.respond(request.ID, result)
	case "initialized":
		return nil
	case "shutdown":
		if err := s.Shutdown(ctx); err != nil {
			return s.respondError(request.ID, codeInternalError, err.Error())
		}
		return s.respond(request.ID, nil)
	case "exit":
		return nil
	case "textDocument/didOpen":
		var params lsp.DidOpenTextDocumentParams
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return fmt.Errorf("failed to unmarshal didOpen params: %w", err)
		}
		return s.DidOpen(ctx, params)
	case "textDocument/didChange":
		var params lsp.DidChangeTextDocumentParams
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return fmt.Errorf("failed to unmarshal didChange params: %w", err)
		}
		return s.DidChange(ctx, params)
	case "textDocument/didClose":
		var params lsp.DidCloseTextDocumentParams
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return fmt.Errorf("failed to unmarshal didClose params: %w", err)
		}
		return s.DidClose(ctx, params)
	case "textDocument/hover":
		var params lsp.TextDocumentPositionParams
		if err := json.Unmarshal(request.Params, &params); err != nil {
			return fmt.Errorf("failed to unmarshal hover params: %w", err)
		}
		result, err := s.Hover(ctx, params)
		if err != nil {
			return s.respondError(request.ID, codeInternalError, err.Error())
		}
		return s.respond(request.ID, result)
	default:
		s.logger.Printf("Unhandled method: %s", request.Method)
		if request.ID != nil {
			return s.respondError(request.ID, codeMethodNotFound, fmt.Sprintf("method not found: %s", request.Method))
		}
		return nil
	}
}
