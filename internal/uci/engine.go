// Package uci drives a UCI chess engine subprocess (typically Stockfish)
// as the position evaluator. One Engine owns one engine session; requests
// on a session are serialised, and a cancelled request abandons the whole
// session so a half-read search can never corrupt later queries. Callers
// wanting concurrent analyses open one session per analysis.
package uci

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log"
	"os/exec"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/chesskit/analyzer-go/internal/analysis"
	apperrors "github.com/chesskit/analyzer-go/internal/errors"
)

// Default search limits, matching a casual-review level of analysis.
const (
	DefaultDepth      = 12
	DefaultMoveTimeMS = 1000
	DefaultSkillLevel = 20

	handshakeTimeout = 10 * time.Second
)

// enginePaths are the fixed locations tried before $PATH.
var enginePaths = []string{
	"/usr/local/bin/stockfish",
	"/usr/bin/stockfish",
	"/opt/homebrew/bin/stockfish",
}

// FindEngine locates a Stockfish binary, trying well-known install
// locations and then $PATH.
func FindEngine() (string, error) {
	for _, p := range enginePaths {
		if _, err := exec.LookPath(p); err == nil {
			return p, nil
		}
	}
	if p, err := exec.LookPath("stockfish"); err == nil {
		return p, nil
	}
	return "", apperrors.ErrEngineNotFound
}

// Engine is a live UCI engine session. It implements analysis.Evaluator
// and analysis.MultiPVEvaluator.
type Engine struct {
	path       string
	depth      int
	moveTimeMS int
	skill      int
	logger     *log.Logger

	mu      sync.Mutex // one request in flight per session
	cmd     *exec.Cmd
	stdin   *bufio.Writer
	lines   chan string
	multipv int  // currently configured MultiPV
	broken  bool // session abandoned, e.g. after cancellation
}

// Option configures an Engine.
type Option func(*Engine)

// WithDepth sets the search depth limit.
func WithDepth(d int) Option {
	return func(e *Engine) {
		if d > 0 {
			e.depth = d
		}
	}
}

// WithMoveTime sets the per-query time limit in milliseconds.
func WithMoveTime(ms int) Option {
	return func(e *Engine) {
		if ms > 0 {
			e.moveTimeMS = ms
		}
	}
}

// WithSkillLevel sets the engine skill level (0-20).
func WithSkillLevel(level int) Option {
	return func(e *Engine) {
		if level < 0 {
			level = 0
		}
		if level > 20 {
			level = 20
		}
		e.skill = level
	}
}

// WithLogger sets the logger for engine lifecycle events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// New starts an engine process and completes the UCI handshake.
func New(path string, opts ...Option) (*Engine, error) {
	e := &Engine{
		path:       path,
		depth:      DefaultDepth,
		moveTimeMS: DefaultMoveTimeMS,
		skill:      DefaultSkillLevel,
		logger:     log.New(io.Discard, "", 0),
		multipv:    1,
	}
	for _, opt := range opts {
		opt(e)
	}

	cmd := exec.Command(path)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, apperrors.Wrap(err, "uci: stdin pipe")
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, apperrors.Wrap(err, "uci: stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("%w: starting %s: %v", apperrors.ErrEvaluatorUnavailable, path, err)
	}

	e.cmd = cmd
	e.stdin = bufio.NewWriter(stdin)
	e.lines = make(chan string, 64)
	go e.readLoop(stdout)

	ctx, cancel := context.WithTimeout(context.Background(), handshakeTimeout)
	defer cancel()
	if err := e.handshake(ctx); err != nil {
		e.abandon()
		return nil, err
	}

	e.logger.Printf("uci: engine started (path=%s, skill=%d, depth=%d)", path, e.skill, e.depth)
	return e, nil
}

// readLoop pumps engine output into the line channel until EOF.
func (e *Engine) readLoop(stdout io.Reader) {
	scanner := bufio.NewScanner(stdout)
	for scanner.Scan() {
		e.lines <- scanner.Text()
	}
	close(e.lines)
}

func (e *Engine) handshake(ctx context.Context) error {
	if err := e.send("uci"); err != nil {
		return err
	}
	if _, err := e.waitFor(ctx, "uciok"); err != nil {
		return err
	}
	if err := e.send(fmt.Sprintf("setoption name Skill Level value %d", e.skill)); err != nil {
		return err
	}
	if err := e.send("isready"); err != nil {
		return err
	}
	_, err := e.waitFor(ctx, "readyok")
	return err
}

func (e *Engine) send(cmd string) error {
	if _, err := e.stdin.WriteString(cmd + "\n"); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
	}
	if err := e.stdin.Flush(); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrEvaluatorUnavailable, err)
	}
	return nil
}

// waitFor reads lines until one starts with the given prefix. Cancellation
// abandons the session.
func (e *Engine) waitFor(ctx context.Context, prefix string) (string, error) {
	for {
		select {
		case <-ctx.Done():
			e.abandon()
			return "", ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				return "", fmt.Errorf("%w: engine exited", apperrors.ErrEvaluatorUnavailable)
			}
			if strings.HasPrefix(line, prefix) {
				return line, nil
			}
		}
	}
}

// abandon marks the session unusable and reaps the process.
func (e *Engine) abandon() {
	if e.broken {
		return
	}
	e.broken = true
	if e.cmd != nil && e.cmd.Process != nil {
		_ = e.cmd.Process.Kill()
		go func() { _ = e.cmd.Wait() }()
	}
}

// IsRunning reports whether the session can still accept queries.
func (e *Engine) IsRunning() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cmd != nil && !e.broken
}

// Close shuts the engine down cleanly.
func (e *Engine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.broken || e.cmd == nil {
		return nil
	}
	e.broken = true
	_ = e.send("quit")
	done := make(chan error, 1)
	go func() { done <- e.cmd.Wait() }()
	select {
	case err := <-done:
		return err
	case <-time.After(2 * time.Second):
		_ = e.cmd.Process.Kill()
		return <-done
	}
}

// BestMove analyses a position and returns the engine's choice with its
// score normalised to White's perspective.
func (e *Engine) BestMove(ctx context.Context, fen string) (*analysis.EngineResult, error) {
	results, err := e.search(ctx, fen, 1)
	if err != nil {
		return nil, err
	}
	return &results[0], nil
}

// TopMoves analyses a position in MultiPV mode and returns up to n
// candidate moves, best first.
func (e *Engine) TopMoves(ctx context.Context, fen string, n int) ([]analysis.EngineResult, error) {
	if n < 1 {
		n = 1
	}
	return e.search(ctx, fen, n)
}

// search runs one blocking query against the session.
func (e *Engine) search(ctx context.Context, fen string, multipv int) ([]analysis.EngineResult, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.broken {
		return nil, fmt.Errorf("%w: session closed", apperrors.ErrEvaluatorUnavailable)
	}

	whiteToMove, err := sideToMove(fen)
	if err != nil {
		return nil, err
	}

	if multipv != e.multipv {
		if err := e.send(fmt.Sprintf("setoption name MultiPV value %d", multipv)); err != nil {
			return nil, err
		}
		e.multipv = multipv
	}

	if err := e.send("position fen " + fen); err != nil {
		return nil, err
	}
	if err := e.send(fmt.Sprintf("go depth %d movetime %d", e.depth, e.moveTimeMS)); err != nil {
		return nil, err
	}

	return e.collect(ctx, whiteToMove, multipv)
}

// collect reads info lines until bestmove and assembles the results.
func (e *Engine) collect(ctx context.Context, whiteToMove bool, multipv int) ([]analysis.EngineResult, error) {
	infos := make([]searchInfo, multipv)

	for {
		select {
		case <-ctx.Done():
			e.abandon()
			return nil, ctx.Err()
		case line, ok := <-e.lines:
			if !ok {
				e.broken = true
				return nil, fmt.Errorf("%w: engine exited during search", apperrors.ErrEvaluatorUnavailable)
			}
			switch {
			case strings.HasPrefix(line, "info "):
				parseInfo(line, infos)
			case strings.HasPrefix(line, "bestmove"):
				return assembleResults(line, infos, whiteToMove), nil
			}
		}
	}
}

// searchInfo is the last engine report for one MultiPV slot.
type searchInfo struct {
	depth    int
	scoreCP  int
	mate     int
	hasMate  bool
	hasScore bool
	pv       []string
}

// parseInfo folds one "info ..." line into the MultiPV slots. Engines emit
// lines of increasing depth, so later lines overwrite earlier ones.
func parseInfo(line string, infos []searchInfo) {
	fields := strings.Fields(line)
	slot := 0
	info := searchInfo{}

	for i := 0; i < len(fields); i++ {
		switch fields[i] {
		case "multipv":
			if i+1 < len(fields) {
				if n, err := strconv.Atoi(fields[i+1]); err == nil && n >= 1 {
					slot = n - 1
				}
			}
		case "depth":
			if i+1 < len(fields) {
				info.depth, _ = strconv.Atoi(fields[i+1])
			}
		case "score":
			if i+2 < len(fields) {
				n, err := strconv.Atoi(fields[i+2])
				if err != nil {
					continue
				}
				switch fields[i+1] {
				case "cp":
					info.scoreCP = n
					info.hasScore = true
				case "mate":
					info.mate = n
					info.hasMate = true
					info.hasScore = true
				}
			}
		case "pv":
			info.pv = fields[i+1:]
			i = len(fields)
		}
	}

	if slot < len(infos) && info.hasScore {
		infos[slot] = info
	}
}

// assembleResults converts collected search info to evaluator results with
// scores normalised to White's perspective.
func assembleResults(bestmoveLine string, infos []searchInfo, whiteToMove bool) []analysis.EngineResult {
	bestmove := ""
	if fields := strings.Fields(bestmoveLine); len(fields) > 1 && fields[1] != "(none)" {
		bestmove = fields[1]
	}

	results := make([]analysis.EngineResult, 0, len(infos))
	for i, info := range infos {
		res := analysis.EngineResult{
			Score: formatScore(info, whiteToMove),
			Depth: info.depth,
			PV:    info.pv,
		}
		if len(info.pv) > 0 {
			res.BestMoveUCI = info.pv[0]
		}
		if i == 0 && bestmove != "" {
			res.BestMoveUCI = bestmove
		}
		if res.BestMoveUCI == "" && i > 0 {
			continue // unused MultiPV slot
		}
		results = append(results, res)
	}

	if len(results) == 0 {
		results = append(results, analysis.EngineResult{BestMoveUCI: bestmove, Score: "0.0"})
	}
	return results
}

// formatScore renders a score string from White's perspective: pawns for
// centipawn scores, "M<n>" for mate scores. UCI engines report from the
// side to move, so scores are negated when Black is on move. A mate
// distance of zero means the side to move is already mated.
func formatScore(info searchInfo, whiteToMove bool) string {
	if !info.hasScore {
		return "0.0"
	}
	if info.hasMate {
		mate := info.mate
		if mate == 0 {
			mate = -1
		}
		if !whiteToMove {
			mate = -mate
		}
		return fmt.Sprintf("M%d", mate)
	}
	cp := info.scoreCP
	if !whiteToMove {
		cp = -cp
	}
	return fmt.Sprintf("%.2f", float64(cp)/100)
}

// sideToMove extracts the active colour from a FEN string.
func sideToMove(fen string) (bool, error) {
	fields := strings.Fields(fen)
	if len(fields) < 2 {
		return false, apperrors.Wrapf(apperrors.ErrInvalidFEN, "%q", fen)
	}
	switch fields[1] {
	case "w":
		return true, nil
	case "b":
		return false, nil
	}
	return false, apperrors.Wrapf(apperrors.ErrInvalidFEN, "bad side to move in %q", fen)
}
