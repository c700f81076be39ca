package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/interpreter"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/store"
	"github.com/aurrelhebert/warp10-zeppelin-quantumviz/internal/warpscript"
)

var execCmd = &cobra.Command{
	Use:   "exec [file]",
	Short: "Run a WarpScript file (or stdin) once and print the result",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runExec,
}

func init() {
	rootCmd.AddCommand(execCmd)
}

func runExec(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	program, err := readProgram(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w := warpscript.New(warpscript.Config{URL: cfg.Warp10.URL, RateLimit: cfg.Warp10.RateLimit}, logger)
	if err := w.Open(ctx); err != nil {
		return err
	}
	defer w.Close()

	res := w.Interpret(ctx, program, &interpreter.Context{Resources: store.NewMemory()})
	if res.Code != interpreter.CodeSuccess {
		fmt.Fprint(cmd.ErrOrStderr(), res.Message)
		return fmt.Errorf("execution failed")
	}
	fmt.Fprint(cmd.OutOrStdout(), res.Message)
	return nil
}

func readProgram(stdin io.Reader, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(data), nil
}
