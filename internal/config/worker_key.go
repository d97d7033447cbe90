package config

type WorkerKeyStruct struct {
	BreakdownQueue string
}

var WorkerKey = &WorkerKeyStruct{
	BreakdownQueue: "compute_breakdowns_queue",
}
