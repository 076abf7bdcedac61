package main

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/gopacket"
	"github.com/google/gopacket/layers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/frozenpine/pktview/capture"
)

var udpPacket = []byte{
	0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
	0x08, 0x00,
	0x45, 0x00, 0x00, 0x26,
	0xab, 0x49, 0x40, 0x00,
	0xff, 0x11, 0xf7, 0x00,
	0x8b, 0x85, 0xd9, 0x6e,
	0x8b, 0x85, 0xe9, 0x02,
	0x99, 0xd0, 0x04, 0x3f,
	0x00, 0x12, 0x72, 0x28,
	0x68, 0x65, 0x6c, 0x6c, 0x6f, 0x68, 0x65, 0x6c, 0x6c, 0x6f,
}

func writeFixture(t *testing.T, count int) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "in.pcap")

	writer, err := capture.CreateWriter(path, 0)
	require.NoError(t, err)

	for idx := 0; idx < count; idx++ {
		require.NoError(t, writer.WritePacket(
			gopacket.CaptureInfo{Timestamp: time.Unix(1700000000, int64(idx)*1000)}, udpPacket,
		))
	}
	require.NoError(t, writer.Close())

	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestDump(t *testing.T) {
	path := writeFixture(t, 3)

	out, err := run(t, "dump", "file://"+path, "--count", "2", "--sessions", "--payload", "4", "--log-level", "error")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "[src_port: 39376, dst_port: 1087, length: 18, checksum: 29224]")
	assert.Contains(t, lines[0], "[10]bytes: [68656C6C...]")
	assert.Equal(t, "[UDP] 139.133.217.110:39376 -> 139.133.233.2:1087 frames: 2, bytes: 20", lines[2])
}

func TestRewriteCommand(t *testing.T) {
	path := writeFixture(t, 2)
	output := filepath.Join(t.TempDir(), "out.pcap")

	_, err := run(t, "rewrite", "-s", "file://"+path, "-o", output,
		"--dst-mac", "02:42:ac:11:00:03", "--dst-ip", "10.1.2.3", "--dst-port", "5000",
		"--log-level", "error")
	require.NoError(t, err)

	src, err := capture.CreateHandler("file://" + output)
	require.NoError(t, err)
	defer src.Close()

	for idx := 0; idx < 2; idx++ {
		data, _, err := src.ReadPacketData()
		require.NoError(t, err)

		pkt := gopacket.NewPacket(data, layers.LayerTypeEthernet, gopacket.Default)
		require.Nil(t, pkt.ErrorLayer())

		assert.Equal(t, "02:42:ac:11:00:03", pkt.LinkLayer().(*layers.Ethernet).DstMAC.String())
		assert.Equal(t, "10.1.2.3", pkt.Layer(layers.LayerTypeIPv4).(*layers.IPv4).DstIP.String())
		assert.EqualValues(t, 5000, pkt.Layer(layers.LayerTypeUDP).(*layers.UDP).DstPort)
	}
}

func TestRewriteRequiresRule(t *testing.T) {
	for _, key := range []string{"src-mac", "dst-mac", "src-ip", "dst-ip", "src-port", "dst-port"} {
		config.Set(key, "")
	}

	rw, err := buildRewriter()
	assert.Error(t, err)
	assert.Nil(t, rw)

	config.Set("dst-ip", "not-an-ip")
	_, err = buildRewriter()
	assert.ErrorContains(t, err, "invalid ip address")

	config.Set("dst-ip", "")
	config.Set("src-mac", "02:42")
	_, err = buildRewriter()
	assert.Error(t, err)
}
