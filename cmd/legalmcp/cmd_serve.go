package main

import (
	"fmt"
	"log/slog"
	"net"
	"os"

	"github.com/spf13/cobra"

	"github.com/vinothezhumalai/legalmcpserver/internal/jsonrpc"
	"github.com/vinothezhumalai/legalmcpserver/internal/mcp"
)

func newServeCommand() *cobra.Command {
	var plainRPC bool
	var tcpAddr string
	var tcpAllowRemote bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server (or a plain JSON-RPC server)",
		Long: `Start the document analysis server.

By default, the server speaks the Model Context Protocol over stdin/stdout
using newline-delimited JSON, for use from MCP-capable clients.

Use --rpc to expose the plain JSON-RPC 2.0 method set instead, and --tcp to
serve JSON-RPC over TCP (useful for debugging). TCP defaults to loopback
(127.0.0.1) for security; use --tcp-allow-remote to bind to all interfaces.

MCP tools:
  legal_summarize_document   Summarize a legal document
  legal_classify_document    Classify a document by legal area
  legal_evaluate_quality     Full quality evaluation with scoreboard
  legal_quality_trend        Score trend across this session
  legal_list_evaluations     List recorded evaluations

JSON-RPC methods (with --rpc or --tcp):
  document.summarize  document.classify  document.evaluate
  history.trend       history.list`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.Default()

			service, err := buildService(logger)
			if err != nil {
				return err
			}

			if tcpAddr != "" {
				registry := jsonrpc.NewMethodRegistry()
				jsonrpc.RegisterHandlers(registry, jsonrpc.NewHandlerContext(service))
				server := jsonrpc.NewServer(registry, logger)

				tcpAddr = resolveTCPAddr(tcpAddr, tcpAllowRemote, logger)
				listener, err := jsonrpc.NewTCPListener(tcpAddr, server)
				if err != nil {
					return fmt.Errorf("failed to start TCP server: %w", err)
				}
				defer listener.Close() //nolint:errcheck
				fmt.Fprintf(os.Stderr, "JSON-RPC server listening on %s\n", listener.Addr())
				return listener.Serve()
			}

			if plainRPC {
				registry := jsonrpc.NewMethodRegistry()
				jsonrpc.RegisterHandlers(registry, jsonrpc.NewHandlerContext(service))
				server := jsonrpc.NewServer(registry, logger)
				fmt.Fprintln(os.Stderr, "JSON-RPC server running on stdio")
				server.ServeStdio(os.Stdin, os.Stdout)
				return nil
			}

			srv := mcp.NewServer(service, logger)
			fmt.Fprintln(os.Stderr, "MCP server running on stdio")
			srv.ServeStdio(cmd.Context(), os.Stdin, os.Stdout)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plainRPC, "rpc", false, "Serve plain JSON-RPC 2.0 on stdio instead of MCP")
	cmd.Flags().StringVar(&tcpAddr, "tcp", "", "TCP address to listen on for JSON-RPC (e.g., :9000)")
	cmd.Flags().BoolVar(&tcpAllowRemote, "tcp-allow-remote", false,
		"Allow binding to non-loopback addresses (WARNING: exposes the server to the network with no authentication)")

	return cmd
}

// resolveTCPAddr ensures TCP addresses default to loopback unless --tcp-allow-remote is set.
func resolveTCPAddr(addr string, allowRemote bool, logger *slog.Logger) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		// Likely just a port like "9000"; treat as ":9000".
		host = ""
		port = addr
	}

	if allowRemote {
		logger.Warn("TCP server binding to all interfaces with no authentication",
			"address", addr)
		return addr
	}

	if host == "" || host == "0.0.0.0" || host == "::" {
		logger.Info("JSON-RPC server listening on TCP (local only)")
		return net.JoinHostPort("127.0.0.1", port)
	}

	return addr
}
