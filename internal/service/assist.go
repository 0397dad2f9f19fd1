package service

import (
	"context"
	"fmt"

	"nearhelp/internal/domain"
	"nearhelp/pkg/e"
)

const assistDisclaimer = "This guidance is informational only. If anyone is in immediate danger, call your local emergency number first."

// guidanceSteps is static curated content, served without any external call.
var guidanceSteps = map[domain.CrisisType][]string{
	domain.CrisisMedical: {
		"Call your local emergency number before anything else.",
		"Check whether the person is conscious and breathing.",
		"Do not move someone with a suspected head, neck or spine injury.",
		"If trained, begin CPR when there is no breathing or pulse.",
		"Stay on the line with dispatch and follow their instructions.",
	},
	domain.CrisisBreakdown: {
		"Pull as far off the road as possible and switch on hazard lights.",
		"Place a warning triangle behind the vehicle if you have one.",
		"Stay out of the traffic lane while waiting for help.",
		"Share your exact position with the responders heading your way.",
	},
	domain.CrisisGasLeak: {
		"Leave the area immediately and take others with you.",
		"Do not operate switches, phones or anything that can spark indoors.",
		"Call the gas emergency line once you are at a safe distance.",
		"Do not re-enter until professionals declare the area safe.",
	},
	domain.CrisisOther: {
		"Move yourself and others away from immediate danger.",
		"Call the relevant emergency service if the situation escalates.",
		"Describe the situation in your SOS so responders come prepared.",
	},
}

type Assist struct{}

func NewAssistService() *Assist {
	return &Assist{}
}

func (s *Assist) Guidance(_ context.Context, req domain.CrisisAssistRequest) (domain.CrisisGuidance, error) {
	const op = "service.Assist.Guidance"

	crisis := req.CrisisType
	if crisis == "" {
		crisis = domain.CrisisOther
	}
	steps, ok := guidanceSteps[crisis]
	if !ok {
		return domain.CrisisGuidance{}, fmt.Errorf("%s: unknown crisis type %q: %w", op, req.CrisisType, e.ErrValidation)
	}

	return domain.CrisisGuidance{
		CrisisType: crisis,
		Steps:      steps,
		Disclaimer: assistDisclaimer,
		Source:     "local-fallback",
	}, nil
}
