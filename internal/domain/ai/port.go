package ai

import (
	"context"

	"github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
)

type Client interface {
	Analyze(ctx context.Context, req analysis.Request) (string, error)
}
