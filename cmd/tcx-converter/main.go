package main

import (
	"context"
	"os"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/eemil100/tcx-converter/internal/version"
	"github.com/eemil100/tcx-converter/internal/xslog"
)

func main() {
	_ = godotenv.Load()

	logger := xslog.NewLoggerFromEnv(os.Stderr)
	ctx := xslog.WithLogger(context.Background(), logger)

	rootCmd := &cobra.Command{
		Use:     "tcx-converter",
		Short:   "Combine a health archive and a GPX track into a TCX activity",
		Long:    "Merges workout sessions and heart-rate records from an exported health archive with a GPX track log, producing a TCX file ready for upload.",
		Version: version.Get(),
		RunE:    runConvert,
	}
	addConvertFlags(rootCmd)

	rootCmd.AddCommand(inspectCmd())

	if err := fang.Execute(ctx, rootCmd, fang.WithNotifySignal(os.Interrupt, syscall.SIGTERM)); err != nil {
		os.Exit(1)
	}
}
