package enum

import "encoding/json"

// PipelineStage identifies one step of the sales-to-delivery pipeline.
type PipelineStage int

const (
	PipelineStagePricing   PipelineStage = 0
	PipelineStageScope     PipelineStage = 1
	PipelineStageProforma  PipelineStage = 2
	PipelineStageAgreement PipelineStage = 3
	PipelineStagePayment   PipelineStage = 4
	PipelineStageKickoff   PipelineStage = 5
)

func (s PipelineStage) String() string {
	return [...]string{"Pricing", "Scope", "Proforma", "Agreement", "Payment", "Kickoff"}[s]
}

// Stages returns the pipeline stages in order.
func Stages() []PipelineStage {
	return []PipelineStage{
		PipelineStagePricing,
		PipelineStageScope,
		PipelineStageProforma,
		PipelineStageAgreement,
		PipelineStagePayment,
		PipelineStageKickoff,
	}
}

func (s PipelineStage) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
