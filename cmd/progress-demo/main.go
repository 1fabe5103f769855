package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	logrusr "github.com/bombsimon/logrusr/v3"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/monitorkit/progress"
	"github.com/monitorkit/progress/meter"
)

var (
	presetKey string
	total     int64
	delay     time.Duration
	desc      string
	logLevel  int
	channel   bool
)

func DemoCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "progress-demo",
		Short: "Demonstrates the built-in progress monitor presets",
		PreRunE: func(c *cobra.Command, args []string) error {
			if presetKey == "none" || presetKey == "" {
				return nil
			}
			if _, err := progress.LookupPreset(presetKey); err != nil {
				return fmt.Errorf("%w (registered: %s)",
					err, strings.Join(progress.DefaultRegistry.Keys(), ", "))
			}
			return nil
		},
		RunE: func(c *cobra.Command, args []string) error {
			logrusLog := logrus.New()
			logrusLog.SetOutput(os.Stdout)
			logrusLog.SetFormatter(&logrus.TextFormatter{})
			logrusLog.SetLevel(logrus.Level(logLevel))
			log := logrusr.New(logrusLog)

			ctx, cancelFunc := context.WithCancel(context.Background())
			defer cancelFunc()

			if channel {
				return runChannelDemo(ctx, log)
			}

			var arg any = presetKey
			if presetKey == "none" || presetKey == "" {
				arg = nil
			}

			items := make([]int, total)
			seq, err := progress.Iter(items, arg,
				progress.WithDesc(desc),
				progress.WithLogger(log),
			)
			if err != nil {
				log.Error(err, "failed to resolve progress argument", "preset", presetKey)
				return err
			}

			for range seq {
				time.Sleep(delay)
			}
			return nil
		},
	}

	rootCmd.Flags().StringVar(&presetKey, "preset", "click", "progress preset to demonstrate (none disables reporting)")
	rootCmd.Flags().Int64Var(&total, "total", 45, "number of units of simulated work")
	rootCmd.Flags().DurationVar(&delay, "delay", 50*time.Millisecond, "simulated duration of one unit of work")
	rootCmd.Flags().StringVar(&desc, "desc", "processing", "description label for the monitor")
	rootCmd.Flags().IntVar(&logLevel, "verbose", 4, "level for logging output")
	rootCmd.Flags().BoolVar(&channel, "channel", false, "consume events from a channel meter instead of rendering")
	return rootCmd
}

// runChannelDemo drives a ChannelMeter and consumes its events the way a
// custom UI would.
func runChannelDemo(ctx context.Context, log logr.Logger) error {
	cm := meter.NewChannelMeter(ctx, total, progress.WithDesc(desc))

	done := make(chan struct{})
	go func() {
		defer close(done)
		for event := range cm.Events() {
			fmt.Printf("[%s] %s %d/%d (%d%%)\n",
				event.Timestamp.Format("15:04:05"),
				event.Desc, event.N, event.Total, int(event.Percent))
		}
	}()

	for i := int64(0); i < total; i++ {
		time.Sleep(delay)
		cm.Update(1)
	}
	if err := cm.Close(); err != nil {
		return err
	}
	<-done

	log.Info("channel demo complete", "dropped_events", cm.DroppedEvents())
	return nil
}

func main() {
	if err := DemoCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
