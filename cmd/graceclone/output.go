package main

import (
	"encoding/json"
	"time"

	"github.com/4thel00z/graceclone/internal"
	"github.com/spf13/cobra"
)

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func targetJSON(t internal.CheckoutTarget) map[string]any {
	return map[string]any{
		"action":   string(t.Kind),
		"tag":      t.Tag.Name,
		"commit":   t.Tag.Hash,
		"age_days": t.Age,
	}
}

func headJSON(h *internal.Head) map[string]any {
	if h == nil {
		return nil
	}
	return map[string]any{
		"branch":   h.Name,
		"commit":   h.Hash,
		"detached": h.Detached,
	}
}

func runJSON(res *internal.RunResult) map[string]any {
	return map[string]any{
		"state":   string(res.State),
		"path":    res.Location.LocalPath,
		"remote":  res.Location.RemoteURL,
		"cloned":  res.Cloned,
		"remotes": res.Remotes,
		"target":  targetJSON(res.Target),
		"head":    headJSON(res.Head),
	}
}

func planJSON(plan *internal.PlanResult) map[string]any {
	return map[string]any{
		"path":   plan.Location.LocalPath,
		"target": targetJSON(plan.Target),
		"head":   headJSON(plan.Head),
	}
}

func tagsJSON(tags []internal.Tag, now time.Time) []map[string]any {
	out := make([]map[string]any, 0, len(tags))
	for _, tag := range tags {
		out = append(out, map[string]any{
			"name":      tag.Name,
			"commit":    tag.Hash,
			"committed": tag.Committed,
			"age_days":  internal.WholeDays(now.Sub(tag.Committed)),
		})
	}
	return out
}

func capabilitiesJSON(caps []internal.Capability) []map[string]any {
	out := make([]map[string]any, 0, len(caps))
	for _, cp := range caps {
		out = append(out, map[string]any{
			"name":   cp.Name,
			"status": string(cp.Status),
			"detail": cp.Detail,
		})
	}
	return out
}
