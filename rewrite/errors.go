package rewrite

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

func errPhase(phase string, cause error) *rgerr.Error {
	return rgerr.Wrap(rgerr.RewritingError, cause, "rewriting phase failed",
		rgerr.Detail{Key: rgerr.DetailKeyReason, Value: phase})
}
