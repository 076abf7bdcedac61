package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frozenpine/pktview/cache"
	"github.com/frozenpine/pktview/capture"
)

var dumpCmd = &cobra.Command{
	Use:   "dump [source]",
	Short: "Print layer summary of every frame",
	Long: `Print one line per frame with the summary of every decoded layer.

With --sessions a per-session frame and payload byte count is printed
after the capture ends.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src, err := openSource(args)
		if err != nil {
			return err
		}
		defer src.Close()

		ctx, cancel := signalContext()
		defer cancel()

		d := newDumper(cmd.OutOrStdout())

		err = capture.StartCapture(ctx, src, framePool(), d.handle)

		if config.GetBool("sessions") {
			d.printSessions()
		}

		logger.WithField("frames", d.frames).Info("capture finished")

		return err
	},
}

func init() {
	dumpCmd.Flags().IntP("count", "n", 0, "stop after n frames, 0 for no limit")
	dumpCmd.Flags().Bool("sessions", false, "print per-session statistics at exit")
	dumpCmd.Flags().Int("payload", 0, "print at most n payload bytes as hex")
}

func framePool() *cache.BytesPool {
	if size := config.GetInt("snaplen"); size > 0 {
		return cache.NewBytesPool(size)
	}

	return nil
}

type sessionStat struct {
	name   string
	frames int
	bytes  int
}

type dumper struct {
	out      io.Writer
	limit    int
	maxBytes int
	frames   int
	sessions map[string]*sessionStat
}

func newDumper(out io.Writer) *dumper {
	return &dumper{
		out:      out,
		limit:    config.GetInt("count"),
		maxBytes: config.GetInt("payload"),
		sessions: make(map[string]*sessionStat),
	}
}

func (d *dumper) handle(frm *capture.Frame) error {
	if d.limit > 0 && d.frames >= d.limit {
		return io.EOF
	}
	d.frames++

	payload := frm.Payload()

	line := fmt.Sprintf("%s %s", frm.Timestamp.Format("15:04:05.000000"), frm)
	if d.maxBytes > 0 && len(payload) > 0 {
		size, postFix := len(payload), ""
		if size > d.maxBytes {
			size, postFix = d.maxBytes, "..."
		}

		line += fmt.Sprintf(" [%d]bytes: [%X%s]", len(payload), payload[:size], postFix)
	}

	if _, err := fmt.Fprintln(d.out, line); err != nil {
		return err
	}

	if s := frm.Session(); s != nil {
		key := s.Key()

		stat, exist := d.sessions[key]
		if !exist {
			stat = &sessionStat{name: s.String()}
			d.sessions[key] = stat

			logger.WithField("session", stat.name).Debug("new session")
		}

		stat.frames++
		stat.bytes += len(payload)
	}

	return nil
}

func (d *dumper) printSessions() {
	stats := make([]*sessionStat, 0, len(d.sessions))
	for _, s := range d.sessions {
		stats = append(stats, s)
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].frames != stats[j].frames {
			return stats[i].frames > stats[j].frames
		}

		return stats[i].name < stats[j].name
	})

	for _, s := range stats {
		fmt.Fprintf(d.out, "%s frames: %d, bytes: %d\n", s.name, s.frames, s.bytes)
	}

	logger.WithFields(logrus.Fields{"sessions": len(stats)}).Debug("session statistics printed")
}
