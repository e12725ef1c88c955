package prompt

import (
	"fmt"
	"strings"

	"github.com/GouthamiN25/CyberRisk-Advisor/internal/domain/analysis"
)

// GetSystemPrompt provides strict directions and schema for JSON output.
func GetSystemPrompt() string {
	return `You are a senior security analyst and threat hunter assisting a SOC team. Given raw security logs, your job is to:
- detect suspicious or malicious activity and group it into 'detections'
- assign each detection a severity: Low / Medium / High / Critical
- compute an overall risk score from 0 to 100 for the entire log batch
- describe the situation in a concise summary (3-5 sentences)
- propose concrete recommended_actions for the security team
- output follow-up queries_to_run in a SIEM (SPL, KQL, SQL-like).

Return ONLY valid JSON with this exact schema (no markdown, no commentary, no code fences):
{
  "overall_risk_score": float,
  "summary": str,
  "detections": [
    {"title": str, "description": str, "severity": str, "indicators": [str, ...]}
  ],
  "recommended_actions": [str, ...],
  "queries_to_run": [str, ...]
}`
}

// GetUserPrompt builds the user message embedding the request fields.
// Empty fields get explicit fallbacks so the model never sees blank sections.
func GetUserPrompt(req analysis.Request) string {
	env := strings.TrimSpace(req.Environment)
	if env == "" {
		env = "Not specified"
	}
	concern := strings.TrimSpace(req.Concern)
	if concern == "" {
		concern = "General security review"
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		question = "General threat hunting and incident triage."
	}

	return fmt.Sprintf(`ENVIRONMENT:
%s

PRIMARY CONCERN:
%s

ANALYST QUESTION / FOCUS:
%s

LOGS:
%s`, env, concern, question, req.Logs)
}
