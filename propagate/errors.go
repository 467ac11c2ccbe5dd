package propagate

import "github.com/Kappa-Dev/ReGraph-sub002/rgerr"

func errPhase(direction, graphID string, cause error) *rgerr.Error {
	return rgerr.Wrap(rgerr.RewritingError, cause, "propagation phase failed",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: graphID},
		rgerr.Detail{Key: rgerr.DetailKeyReason, Value: direction})
}

func warnInconsistentHint(graphID string) *rgerr.Error {
	return rgerr.New(rgerr.TypingWarning, "typing hint was inconsistent, falling back to canonical propagation",
		rgerr.Detail{Key: rgerr.DetailKeyGraph, Value: graphID})
}
