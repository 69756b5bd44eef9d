package validator

import "log/slog"

// Guard runs one validate call. A panic is logged with the validator name,
// scope and target and turned into an empty result, so a fault on one
// target never takes the findings of other targets with it.
func Guard(log *slog.Logger, v Validator, scope, target string, fn func() []ValidationError) (errs []ValidationError) {
	defer func() {
		if p := recover(); p != nil {
			if log != nil {
				log.Error("validator panicked",
					"validator", v.Name(),
					"scope", scope,
					"target", target,
					"panic", p,
				)
			}
			errs = nil
		}
	}()
	return fn()
}
