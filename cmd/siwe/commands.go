package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/bigvo/siwe-go/pkg/log"
	"github.com/bigvo/siwe-go/pkg/sign"
	"github.com/bigvo/siwe-go/pkg/siwe"
)

// readMessage reads a message from path, or from stdin when path is "-". One trailing
// newline is dropped, since canonical messages never end with one.
func readMessage(path string, stdin io.Reader) (*siwe.Message, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read message: %w", err)
	}

	text := strings.TrimSuffix(string(data), "\n")
	return siwe.ParseMessage(text)
}

// runParse prints the fields of a message.
// Example: siwe parse message.txt
func runParse(config *Config, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: siwe parse <file|->")
	}

	msg, err := readMessage(args[0], stdin)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(stdout)
	t.AppendHeader(table.Row{"Field", "Value"})
	t.AppendSeparator()

	chainID := strconv.FormatUint(msg.ChainID(), 10)
	if name, ok := config.networks.Name(msg.ChainID()); ok {
		chainID += " (" + name + ")"
	}

	t.AppendRow(table.Row{"Domain", msg.Domain()})
	t.AppendRow(table.Row{"Address", msg.Address()})
	if statement, ok := msg.Statement(); ok {
		t.AppendRow(table.Row{"Statement", statement})
	}
	t.AppendRow(table.Row{"URI", msg.URI()})
	t.AppendRow(table.Row{"Version", msg.Version()})
	t.AppendRow(table.Row{"Chain ID", chainID})
	t.AppendRow(table.Row{"Nonce", msg.Nonce()})
	t.AppendRow(table.Row{"Issued At", msg.IssuedAt().Format(siwe.TimeLayout)})
	if exp, ok := msg.ExpirationTime(); ok {
		t.AppendRow(table.Row{"Expiration Time", exp.Format(siwe.TimeLayout)})
	}
	if nb, ok := msg.NotBefore(); ok {
		t.AppendRow(table.Row{"Not Before", nb.Format(siwe.TimeLayout)})
	}
	if requestID, ok := msg.RequestID(); ok {
		t.AppendRow(table.Row{"Request ID", requestID})
	}
	for _, resource := range msg.Resources() {
		t.AppendRow(table.Row{"Resources", resource})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, AutoMerge: true},
	})
	t.Render()
	return nil
}

// runVerify verifies a signed message against the configured network, at the current
// time or at the RFC 3339 instant given as third argument.
// Example: siwe verify message.txt 0x... 2025-01-02T00:00:00Z
func runVerify(ctx context.Context, logger log.Logger, config *Config, args []string, stdin io.Reader, stdout io.Writer) (bool, error) {
	if len(args) != 2 && len(args) != 3 {
		return false, fmt.Errorf("usage: siwe verify <file|-> <signature> [at]")
	}

	msg, err := readMessage(args[0], stdin)
	if err != nil {
		return false, err
	}

	opts := []siwe.VerifierOption{siwe.WithLogger(logger)}
	if len(args) == 3 {
		at, err := time.Parse(time.RFC3339Nano, args[2])
		if err != nil {
			return false, fmt.Errorf("invalid verification time %q: %w", args[2], err)
		}
		opts = append(opts, siwe.WithClock(func() time.Time { return at }))
	}

	verified, err := siwe.NewVerifier(config.chainID, opts...).Verify(ctx, msg, args[1])
	if err != nil {
		return false, err
	}

	if verified {
		fmt.Fprintln(stdout, "verified")
	} else {
		fmt.Fprintln(stdout, "not verified")
	}
	return verified, nil
}

// runRecover prints the address that signed a message's canonical text.
// Example: siwe recover message.txt 0x...
func runRecover(logger log.Logger, args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: siwe recover <file|-> <signature>")
	}

	msg, err := readMessage(args[0], stdin)
	if err != nil {
		return err
	}
	sig, err := sign.ParseSignature(args[1])
	if err != nil {
		return err
	}

	addr, err := sign.NewRecoverer(logger).RecoverAddress([]byte(msg.Format()), sig)
	if err != nil {
		return err
	}
	fmt.Fprintln(stdout, addr.Checksum())
	return nil
}
