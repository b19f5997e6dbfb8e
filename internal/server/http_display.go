package server

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	enabledLabel  = color.New(color.FgGreen, color.Bold).SprintFunc()
	disabledLabel = color.New(color.FgYellow).SprintFunc()
	warningLabel  = color.New(color.FgRed, color.Bold).SprintFunc()
)

// displayServerInfo shows server configuration information
func (s *Server) displayServerInfo(scheme string) {
	fmt.Fprintf(s.out, "Starting resumeradar %s on %s://%s:%s\n", s.Version, scheme, s.Host, s.Port)
	s.displayEndpoints()
	s.displayAuthInfo()
	s.displayRequestLimitInfo()
	s.displayRateLimitInfo()
	fmt.Fprintf(s.out, "Trend table: %s\n", s.RulesSource.Trends)
}

func (s *Server) displayEndpoints() {
	fmt.Fprintln(s.out, "Available endpoints:")
	fmt.Fprintln(s.out, "  GET  /health                 - Health check")
	fmt.Fprintln(s.out, "  GET  /stats                  - Server statistics")
	fmt.Fprintln(s.out, "  POST /analyze                - Category and overall scores")
	fmt.Fprintln(s.out, "  POST /suggestions            - Ordered suggestion list")
	fmt.Fprintln(s.out, "  POST /report                 - Scores and suggestions")
	fmt.Fprintln(s.out, "  POST /sessions               - Create an editing session")
	fmt.Fprintln(s.out, "  GET  /sessions/{id}          - Latest report and applied suggestions")
	fmt.Fprintln(s.out, "  POST /sessions/{id}/applied  - Mark a suggestion as applied")
	fmt.Fprintln(s.out, "  GET  /personas               - Persona templates")
	fmt.Fprintln(s.out, "  GET  /trends                 - Trending skills")
}

func (s *Server) displayAuthInfo() {
	if len(s.APIKeys) > 0 {
		fmt.Fprintf(s.out, "API authentication: %s (%d keys configured)\n", enabledLabel("ENABLED"), len(s.APIKeys))
	} else {
		fmt.Fprintf(s.out, "API authentication: %s (no API keys configured)\n", disabledLabel("DISABLED"))
		fmt.Fprintf(s.out, "%s API endpoints are publicly accessible!\n", warningLabel("WARNING:"))
	}
}

func (s *Server) displayRequestLimitInfo() {
	if s.MaxRequestSize > 0 {
		fmt.Fprintf(s.out, "Request size limit: %d bytes (%.1f MB)\n", s.MaxRequestSize, float64(s.MaxRequestSize)/(1024*1024))
	} else {
		fmt.Fprintf(s.out, "Request size limit: %s\n", disabledLabel("DISABLED"))
	}
}

func (s *Server) displayRateLimitInfo() {
	if s.RateLimit != nil && s.RateLimit.Enabled {
		fmt.Fprintf(s.out, "Rate limiting: %s (%d requests/min, burst: %d)\n",
			enabledLabel("ENABLED"), s.RateLimit.RequestsPerMin, s.RateLimit.BurstCapacity)
		if s.RateLimit.ByAPIKey {
			fmt.Fprintln(s.out, "  - Per API key rate limiting enabled")
		}
		if s.RateLimit.ByIP {
			fmt.Fprintln(s.out, "  - Per IP address rate limiting enabled")
		}
	} else {
		fmt.Fprintf(s.out, "Rate limiting: %s\n", disabledLabel("DISABLED"))
	}
}
