package main

import (
	"net"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/frozenpine/pktview"
	"github.com/frozenpine/pktview/capture"
)

var rewriteCmd = &cobra.Command{
	Use:   "rewrite [source]",
	Short: "Rewrite addresses and ports of frames into a new pcap file",
	Long: `Rewrite MAC addresses, ip addresses and transport ports of every frame in
place, then write the frame to the output pcap file.

Frames a rule can not apply to are written with the applicable rules only.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rw, err := buildRewriter()
		if err != nil {
			return err
		}

		output := config.GetString("output")
		if output == "" {
			return errors.New("output file must be specified")
		}

		src, err := openSource(args)
		if err != nil {
			return err
		}
		defer src.Close()

		writer, err := capture.CreateWriter(output, src.Snaplen())
		if err != nil {
			return err
		}
		defer writer.Close()

		ctx, cancel := signalContext()
		defer cancel()

		skipped := 0

		err = capture.StartCapture(ctx, src, framePool(), func(frm *capture.Frame) error {
			if err := rw.Apply(frm); err != nil {
				skipped++
				logger.WithField("frame", frm).Debugf("rewrite partially applied: %v", err)
			}

			return writer.WriteFrame(frm)
		})

		logger.WithFields(logrus.Fields{
			"output":  output,
			"frames":  writer.Count(),
			"partial": skipped,
		}).Info("rewrite finished")

		return err
	},
}

func init() {
	rewriteCmd.Flags().StringP("output", "o", "", "output pcap file")
	rewriteCmd.Flags().String("src-mac", "", "new source mac address")
	rewriteCmd.Flags().String("dst-mac", "", "new destination mac address")
	rewriteCmd.Flags().String("src-ip", "", "new source ip address")
	rewriteCmd.Flags().String("dst-ip", "", "new destination ip address")
	rewriteCmd.Flags().Uint16("src-port", 0, "new source port, 0 keeps original")
	rewriteCmd.Flags().Uint16("dst-port", 0, "new destination port, 0 keeps original")
	rewriteCmd.Flags().Bool("fix-checksums", true, "recompute ip and transport checksums")
}

func parseMacFlag(name string) (*pktview.MacAddr, error) {
	value := config.GetString(name)
	if value == "" {
		return nil, nil
	}

	addr, err := pktview.ParseMacAddr(value)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}

	return &addr, nil
}

func parseIPFlag(name string) (net.IP, error) {
	value := config.GetString(name)
	if value == "" {
		return nil, nil
	}

	ip := net.ParseIP(value)
	if ip == nil {
		return nil, errors.Errorf("%s: invalid ip address %q", name, value)
	}

	return ip, nil
}

func buildRewriter() (*capture.Rewriter, error) {
	var (
		rw  = capture.Rewriter{FixChecksums: config.GetBool("fix-checksums")}
		err error
	)

	if rw.SrcMAC, err = parseMacFlag("src-mac"); err != nil {
		return nil, err
	}
	if rw.DstMAC, err = parseMacFlag("dst-mac"); err != nil {
		return nil, err
	}
	if rw.SrcIP, err = parseIPFlag("src-ip"); err != nil {
		return nil, err
	}
	if rw.DstIP, err = parseIPFlag("dst-ip"); err != nil {
		return nil, err
	}

	rw.SrcPort = config.GetUint16("src-port")
	rw.DstPort = config.GetUint16("dst-port")

	if rw.Empty() {
		return nil, errors.New("no rewrite rule specified")
	}

	return &rw, nil
}
