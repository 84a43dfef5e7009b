package adapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	"github.com/sreenathkrishnan/martian-go/internal/ctxlog"
)

// Reserved file descriptors opened by the scheduler before the stage binary
// starts. The log file is never closed by the adapter.
const (
	logFileFd   = 3
	errorFileFd = 4
)

// MartianExit is a controlled shutdown for a known condition in data or
// configuration.
type MartianExit struct {
	Message string
}

func (e *MartianExit) Error() string { return e.Message }

// PipelineError is an unexpected stage failure.
type PipelineError struct {
	Message string
}

func (e *PipelineError) Error() string { return e.Message }

// RawMartianStage is implemented by every runnable stage. The context
// carries the stage logger (see internal/ctxlog); the metadata gives access
// to the scheduler file exchange.
type RawMartianStage interface {
	Split(ctx context.Context, md *Metadata) error
	Main(ctx context.Context, md *Metadata) error
	Join(ctx context.Context, md *Metadata) error
}

// Run is the stage binary entrypoint: it looks up the requested stage in the
// stage map and executes the requested phase.
func Run(args []string, stages map[string]RawMartianStage) error {
	return RunWithLogLevel(args, stages, slog.LevelDebug)
}

// RunWithLogLevel is Run with an explicit stage log level.
func RunWithLogLevel(args []string, stages map[string]RawMartianStage, level slog.Level) (err error) {
	logFile := os.NewFile(logFileFd, "_log")
	logger := newLogger(level, logFile)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Info("stage adapter started", "args", args)

	md, err := initialize(args)
	if err != nil {
		return err
	}

	stage, ok := stages[md.StageName]
	if !ok {
		return fmt.Errorf("adapter: couldn't find requested stage %q", md.StageName)
	}

	// A panicking stage must still reach the scheduler's error channel
	// before the process dies.
	defer func() {
		if r := recover(); r != nil {
			msg := fmt.Sprintf("stage %s panicked: %v\n%s", md.StageName, r, debug.Stack())
			logger.Error("stage panicked", "stage", md.StageName, "panic", r)
			_ = writeErrors(msg)
			err = &PipelineError{Message: msg}
		}
	}()

	heartbeatCtx, stopHeartbeat := context.WithCancel(ctx)
	defer stopHeartbeat()
	go md.heartbeatLoop(heartbeatCtx)

	switch md.StageType {
	case "split":
		err = stage.Split(ctx, md)
	case "main":
		err = stage.Main(ctx, md)
	case "join":
		err = stage.Join(ctx, md)
	default:
		err = fmt.Errorf("adapter: unrecognized stage type %q", md.StageType)
	}
	if err != nil {
		HandleStageError(err)
		return err
	}
	return md.Complete()
}

// initialize parses the invocation arguments and loads the jobinfo document.
func initialize(args []string) (*Metadata, error) {
	md, err := NewMetadata(args)
	if err != nil {
		return nil, err
	}
	if err := md.UpdateJobInfo(); err != nil {
		return nil, err
	}
	return md, nil
}

// HandleStageError reports a stage failure on the scheduler error channel.
// Known, controlled failures are prefixed with ASSERT so the scheduler
// treats them as data errors rather than crashes.
func HandleStageError(err error) {
	var exit *MartianExit
	if errors.As(err, &exit) {
		_ = writeErrors("ASSERT: " + exit.Message)
		return
	}
	var pipeline *PipelineError
	if errors.As(err, &pipeline) {
		_ = writeErrors("ASSERT: " + pipeline.Message)
		return
	}
	_ = writeErrors(fmt.Sprintf("stage error: %v", err))
}

// writeErrors writes to the reserved error descriptor.
func writeErrors(msg string) error {
	errFile := os.NewFile(errorFileFd, "_errors")
	_, err := errFile.WriteString(msg)
	return err
}
