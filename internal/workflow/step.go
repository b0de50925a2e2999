package workflow

// StepKey identifies one phase of the HR-design process.
type StepKey string

const (
	StepDiagnosis    StepKey = "diagnosis"
	StepOrganization StepKey = "organization"
	StepPerformance  StepKey = "performance"
	StepCompensation StepKey = "compensation"
	StepConclusion   StepKey = "conclusion"

	// optional extensions, gated off their designated predecessor
	StepJobAnalysis StepKey = "job_analysis"
	StepTree        StepKey = "tree"
	StepHRPolicyOS  StepKey = "hr_policy_os"
)

// MainChain is the fixed total order of the wizard.
var MainChain = []StepKey{
	StepDiagnosis,
	StepOrganization,
	StepPerformance,
	StepCompensation,
	StepConclusion,
}

// predecessors maps each step to the single step that must be submitted
// (or later) before it unlocks. The first step has no entry.
var predecessors = map[StepKey]StepKey{
	StepOrganization: StepDiagnosis,
	StepPerformance:  StepOrganization,
	StepCompensation: StepPerformance,
	StepConclusion:   StepCompensation,
	StepJobAnalysis:  StepOrganization,
	StepTree:         StepOrganization,
	StepHRPolicyOS:   StepCompensation,
}

// AllSteps lists every known step key, main chain first.
var AllSteps = []StepKey{
	StepDiagnosis,
	StepOrganization,
	StepPerformance,
	StepCompensation,
	StepConclusion,
	StepJobAnalysis,
	StepTree,
	StepHRPolicyOS,
}

func KnownStep(step StepKey) bool {
	for _, s := range AllSteps {
		if s == step {
			return true
		}
	}
	return false
}

// Predecessor returns the gating predecessor of step, or "" for the
// first step (and false if the step itself is unknown).
func Predecessor(step StepKey) (StepKey, bool) {
	if !KnownStep(step) {
		return "", false
	}
	pred := predecessors[step]
	return pred, true
}

// Successor returns the next step in the main chain, or "" for the last
// one. Extension steps have no successor.
func Successor(step StepKey) StepKey {
	for i, s := range MainChain {
		if s == step && i+1 < len(MainChain) {
			return MainChain[i+1]
		}
	}
	return ""
}
