package scheduler

var ReleaseLockScriptHash = releaseLockScript.Hash()
