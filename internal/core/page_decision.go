package core

type PageAction int

const (
	ActionServePrerendered PageAction = iota
	ActionRender
	ActionNotFound
)

type PageRequest struct {
	IsDev       bool
	RequestPath string
	HasManifest bool
	Prerendered bool
}

type PageDecision struct {
	Action   PageAction
	HTMLPath string
}

// DecidePageAction picks how a request is answered. Prerendered routes in
// prod serve their exported file, and a miss there is a hard 404: the set of
// concrete paths was fixed at build time. Everything else renders live.
func DecidePageAction(req PageRequest, manifest *Manifest) PageDecision {
	if !req.IsDev && req.HasManifest && req.Prerendered {
		if file, ok := manifest.PageFile(req.RequestPath); ok {
			return PageDecision{Action: ActionServePrerendered, HTMLPath: file}
		}
		return PageDecision{Action: ActionNotFound}
	}

	return PageDecision{Action: ActionRender}
}
