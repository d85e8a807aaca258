// Package lsp wraps the lint engine in a Language Server Protocol server.
// One engine run per document version; no state survives between versions
// beyond the open-document text.
package lsp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"go.lsp.dev/jsonrpc2"
	"go.lsp.dev/protocol"
	"go.lsp.dev/uri"

	"github.com/yaklabco/marklint/internal/logging"
	"github.com/yaklabco/marklint/pkg/config"
	"github.com/yaklabco/marklint/pkg/lint"
)

// Server is a stdio LSP server around the lint engine.
type Server struct {
	engine *lint.Engine
	cfg    *config.Config
	logger *log.Logger
	docs   *documentStore
	conn   jsonrpc2.Conn
}

// New creates a Server. The configuration view applies to every document.
func New(engine *lint.Engine, cfg *config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = logging.Default()
	}
	return &Server{
		engine: engine,
		cfg:    cfg,
		logger: logger,
		docs:   newDocumentStore(),
	}
}

// RunStdio serves LSP over stdin/stdout until the client disconnects.
func (s *Server) RunStdio(ctx context.Context) error {
	return s.Run(ctx, stdioStream{})
}

// Run serves LSP over the given transport.
func (s *Server) Run(ctx context.Context, rwc io.ReadWriteCloser) error {
	stream := jsonrpc2.NewStream(rwc)
	s.conn = jsonrpc2.NewConn(stream)
	s.conn.Go(ctx, s.handle)

	select {
	case <-ctx.Done():
		_ = s.conn.Close()
		return ctx.Err()
	case <-s.conn.Done():
		return s.conn.Err()
	}
}

func (s *Server) handle(ctx context.Context, reply jsonrpc2.Replier, req jsonrpc2.Request) error {
	s.logger.Debug("lsp request", logging.FieldMethod, req.Method())

	switch req.Method() {
	case protocol.MethodInitialize:
		return reply(ctx, initializeResult(), nil)

	case protocol.MethodInitialized:
		return reply(ctx, nil, nil)

	case protocol.MethodShutdown:
		return reply(ctx, nil, nil)

	case protocol.MethodExit:
		err := reply(ctx, nil, nil)
		_ = s.conn.Close()
		return err

	case protocol.MethodTextDocumentDidOpen:
		var params protocol.DidOpenTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		s.docs.open(params.TextDocument.URI, params.TextDocument.Text)
		s.publishDiagnostics(ctx, params.TextDocument.URI)
		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidChange:
		var params protocol.DidChangeTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		// Full sync: the last change carries the whole document.
		if n := len(params.ContentChanges); n > 0 {
			s.docs.update(params.TextDocument.URI, params.ContentChanges[n-1].Text)
			s.publishDiagnostics(ctx, params.TextDocument.URI)
		}
		return reply(ctx, nil, nil)

	case protocol.MethodTextDocumentDidClose:
		var params protocol.DidCloseTextDocumentParams
		if err := json.Unmarshal(req.Params(), &params); err != nil {
			return replyParseError(ctx, reply, err)
		}
		s.docs.close(params.TextDocument.URI)
		s.publish(ctx, params.TextDocument.URI, nil)
		return reply(ctx, nil, nil)

	default:
		return jsonrpc2.MethodNotFoundHandler(ctx, reply, req)
	}
}

func replyParseError(ctx context.Context, reply jsonrpc2.Replier, err error) error {
	return reply(ctx, nil, fmt.Errorf("%w: %v", jsonrpc2.ErrParse, err))
}

func initializeResult() *protocol.InitializeResult {
	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
			},
		},
		ServerInfo: &protocol.ServerInfo{Name: "marklint"},
	}
}

// publishDiagnostics lints the stored document text and pushes the result.
func (s *Server) publishDiagnostics(ctx context.Context, u uri.URI) {
	text, ok := s.docs.get(u)
	if !ok {
		return
	}

	result, err := s.engine.LintFile(ctx, u.Filename(), []byte(text), s.cfg)
	if err != nil {
		s.logger.Warn("lint failed", logging.FieldURI, string(u), logging.FieldError, err)
		return
	}

	diagnostics := make([]protocol.Diagnostic, 0, len(result.Violations))
	for _, v := range result.Violations {
		diagnostics = append(diagnostics, toDiagnostic(v))
	}
	s.publish(ctx, u, diagnostics)
}

func (s *Server) publish(ctx context.Context, u uri.URI, diagnostics []protocol.Diagnostic) {
	if diagnostics == nil {
		diagnostics = []protocol.Diagnostic{}
	}
	err := s.conn.Notify(ctx, protocol.MethodTextDocumentPublishDiagnostics,
		&protocol.PublishDiagnosticsParams{URI: u, Diagnostics: diagnostics})
	if err != nil {
		s.logger.Warn("publish failed", logging.FieldURI, string(u), logging.FieldError, err)
	}
}

// toDiagnostic converts a violation's 1-based positions to LSP's 0-based.
func toDiagnostic(v lint.Violation) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityWarning
	if v.Severity == config.SeverityError {
		severity = protocol.DiagnosticSeverityError
	}

	return protocol.Diagnostic{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(v.StartLine - 1), Character: uint32(v.StartColumn - 1)},
			End:   protocol.Position{Line: uint32(v.EndLine - 1), Character: uint32(v.EndColumn - 1)},
		},
		Severity: severity,
		Code:     v.RuleID,
		Source:   "marklint",
		Message:  fmt.Sprintf("%s: %s", v.Alias, v.Message),
	}
}

// stdioStream adapts stdin/stdout to an io.ReadWriteCloser.
type stdioStream struct{}

func (stdioStream) Read(p []byte) (int, error)  { return os.Stdin.Read(p) }
func (stdioStream) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (stdioStream) Close() error                { return os.Stdout.Close() }
