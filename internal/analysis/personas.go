package analysis

import (
	"fmt"
	"strings"

	"resumeradar/internal/errors"
)

// PersonaID identifies a target employer profile
type PersonaID string

const (
	PersonaFAANG      PersonaID = "faang"
	PersonaStartup    PersonaID = "startup"
	PersonaEnterprise PersonaID = "enterprise"
)

// KnownPersonas lists every persona id the engine accepts
var KnownPersonas = []PersonaID{PersonaFAANG, PersonaStartup, PersonaEnterprise}

// ParsePersona converts user input into a PersonaID
func ParsePersona(s string) (PersonaID, error) {
	id := PersonaID(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range KnownPersonas {
		if id == known {
			return id, nil
		}
	}
	return "", errors.NewValidationError(errors.ErrCodeUnknownPersona,
		fmt.Sprintf("unknown persona %q (expected one of %v)", s, KnownPersonas), nil)
}

// PersonaTemplate describes what one kind of employer looks for
type PersonaTemplate struct {
	ID              PersonaID `yaml:"id" json:"id"`
	DisplayName     string    `yaml:"displayName" json:"displayName"`
	Keywords        []string  `yaml:"keywords" json:"keywords"`
	Phrases         []string  `yaml:"phrases" json:"phrases"`
	Metrics         []string  `yaml:"metrics" json:"metrics"`
	SummaryTemplate string    `yaml:"summaryTemplate" json:"summaryTemplate"`
}

// DefaultPersonas returns the built-in persona templates
func DefaultPersonas() []PersonaTemplate {
	return []PersonaTemplate{
		{
			ID:          PersonaFAANG,
			DisplayName: "Big Tech (FAANG)",
			Keywords: []string{
				"scalability", "distributed systems", "microservices",
				"system design", "algorithms", "data structures", "high availability",
			},
			Phrases: []string{
				"Designed distributed systems serving millions of requests per day",
				"Improved service scalability through horizontal partitioning",
				"Owned system design for a latency-critical microservice",
			},
			Metrics: []string{
				"Reduced p99 latency by 40%",
				"Scaled throughput to 50,000 requests per second",
				"Maintained 99.99% availability",
			},
			SummaryTemplate: "Software engineer with [X] years of experience building scalable distributed systems. " +
				"Designed and operated microservices handling [N] requests per day, with a focus on reliability and performance.",
		},
		{
			ID:          PersonaStartup,
			DisplayName: "Startup",
			Keywords: []string{
				"full-stack", "mvp", "rapid prototyping", "ownership",
				"product-market fit", "agile", "cross-functional",
			},
			Phrases: []string{
				"Shipped an MVP from idea to launch in six weeks",
				"Took end-to-end ownership of the full-stack product",
				"Ran rapid prototyping cycles with customers",
			},
			Metrics: []string{
				"Grew monthly active users from 0 to 20,000",
				"Cut release cycle from two weeks to two days",
				"Reduced cloud spend by 30%",
			},
			SummaryTemplate: "Full-stack engineer who thrives on ownership and speed. " +
				"Took [N] products from MVP to production, working directly with founders and customers.",
		},
		{
			ID:          PersonaEnterprise,
			DisplayName: "Enterprise",
			Keywords: []string{
				"stakeholder management", "compliance", "enterprise architecture",
				"governance", "service level agreements", "risk management", "migration",
			},
			Phrases: []string{
				"Coordinated stakeholder management across five business units",
				"Led a compliance-driven migration of legacy systems",
				"Defined enterprise architecture standards for integration",
			},
			Metrics: []string{
				"Delivered a $2M modernization program on schedule",
				"Met 100% of service level agreements for critical systems",
				"Reduced audit findings by 60%",
			},
			SummaryTemplate: "Senior engineer with [X] years delivering enterprise systems under strict governance. " +
				"Led [N] large-scale migrations while meeting compliance and service level commitments.",
		},
	}
}

func (p PersonaTemplate) clone() PersonaTemplate {
	p.Keywords = cloneStrings(p.Keywords)
	p.Phrases = cloneStrings(p.Phrases)
	p.Metrics = cloneStrings(p.Metrics)
	return p
}
