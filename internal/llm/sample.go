package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/bewerbung-generator/internal/parsing"
	"github.com/jonathan/bewerbung-generator/internal/types"
)

const (
	sampleProvider   = "sample"
	sampleModel      = "content"
	sampleConfidence = 0.5
)

var sampleTexts = map[types.ContentType]string{
	types.ContentEinstiegstext: "mit großem Interesse habe ich Ihre Stellenausschreibung für die Position als Senior DevOps Engineer gelesen. " +
		"Die Möglichkeit, bei einem innovativen Unternehmen wie dem Ihren an der Automatisierung cloudbasierter Infrastrukturen mitzuwirken, " +
		"entspricht genau meinen beruflichen Zielen.",
	types.ContentFachlichePassung: "Mit über 7 Jahren Erfahrung in der DevOps-Praxis und meiner Expertise in Kubernetes, Terraform und AWS " +
		"bringe ich genau die Qualifikationen mit, die Sie suchen. Besonders meine Erfahrung mit MLOps-Plattformen und " +
		"Infrastructure-as-Code passt perfekt zu Ihren Anforderungen.",
	types.ContentMotivationstext: "Die Kombination aus technischer Innovation und der Möglichkeit, in einem cross-funktionalen Team an " +
		"zukunftsweisenden Data Science Plattformen zu arbeiten, begeistert mich besonders. Gerade die Herausforderung, komplexe " +
		"Automatisierungslösungen zu entwickeln, motiviert mich jeden Tag.",
	types.ContentMehrwert: "In meinen bisherigen Projekten konnte ich Deployment-Zeiten um 60% reduzieren und die Systemverfügbarkeit " +
		"auf 99.9% steigern. Diese Erfahrung würde ich gerne nutzen, um auch Ihre Plattform-Infrastruktur zu optimieren und Ihre " +
		"Entwicklungsteams noch effizienter zu machen.",
	types.ContentAbschlusstext: "Über die Möglichkeit, meine Leidenschaft für DevOps-Automatisierung in Ihrem Team einzubringen, " +
		"würde ich mich in einem persönlichen Gespräch sehr freuen.",
	types.ContentBerufserfahrung: "**Seit 2020** | Senior DevOps Engineer | TechCorp GmbH\n" +
		"- Automatisierung von CI/CD-Pipelines mit GitLab CI und Jenkins\n" +
		"- Container-Orchestrierung mit Kubernetes in AWS-Umgebungen",
	types.ContentAusbildung: "**2015-2018** | Master of Science Informatik | TU Berlin\n" +
		"Schwerpunkt: Software Engineering und Cloud Computing\n" +
		"Masterarbeit: \"Microservices-Architekturen in der Praxis\"",
	types.ContentFachkenntnisse: "**Cloud Platforms:** AWS (Expert), Azure (Advanced), Google Cloud (Intermediate)\n" +
		"**DevOps Tools:** Docker, Kubernetes, Terraform, Ansible",
}

// SampleText returns the fixed sample text of a content type
func SampleText(ct types.ContentType) string {
	return sampleTexts[ct]
}

// sampleResponse builds a sample response. Callers may overwrite provider metadata.
func sampleResponse(ct types.ContentType, start time.Time) *types.ContentResponse {
	return &types.ContentResponse{
		ContentType:    ct,
		GeneratedText:  sampleTexts[ct],
		Confidence:     sampleConfidence,
		TokensUsed:     0,
		ProcessingTime: time.Since(start).Seconds(),
		Metadata: map[string]any{
			types.MetaProvider: sampleProvider,
			types.MetaModel:    sampleModel,
			types.MetaSource:   types.SourceSample,
		},
	}
}

// SampleProvider returns fixed German texts. It has no external dependency and is always available.
type SampleProvider struct{}

// NewSampleProvider creates the sample provider
func NewSampleProvider() *SampleProvider {
	return &SampleProvider{}
}

// Descriptor returns the sample descriptor
func (s *SampleProvider) Descriptor() types.ProviderDescriptor {
	return types.ProviderDescriptor{
		Provider:  sampleProvider,
		Model:     sampleModel,
		Folder:    s.ModelFolder(),
		Available: true,
	}
}

func (s *SampleProvider) IsAvailable() bool { return true }

func (s *SampleProvider) ModelFolder() string { return types.SourceSample }

// GenerateContent returns the sample text of the requested type
func (s *SampleProvider) GenerateContent(ctx context.Context, req types.ContentRequest) (*types.ContentResponse, error) {
	if !req.ContentType.Valid() {
		return nil, fmt.Errorf("unknown content type %q", req.ContentType)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return sampleResponse(req.ContentType, time.Now()), nil
}

// GenerateAllCoverLetterContent returns the five sample cover letter texts
func (s *SampleProvider) GenerateAllCoverLetterContent(ctx context.Context, job, profile, company, position string) (map[types.ContentType]string, error) {
	return coverLetterTexts(ctx, s, job, profile, company, position)
}

// ExtractCompanyAndPosition only reads the structured header
func (s *SampleProvider) ExtractCompanyAndPosition(_ context.Context, jobText string) types.JobHeader {
	return parsing.ParseJobHeader(jobText)
}
