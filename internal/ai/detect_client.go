package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/kluaihom/banana-market-backend/internal/detectctx"
	"google.golang.org/genai"
)

type DetectClient struct {
	model string
}

func NewDetectClient(model string) *DetectClient {
	if model == "" {
		model = os.Getenv("GEMINI_DETECT_MODEL")
	}
	if model == "" {
		model = "gemini-2.5-flash"
	}
	return &DetectClient{model: model}
}

const detectPrompt = `You identify Thai banana cultivars from photos for a farm marketplace.
Look at the photo and answer with exactly one JSON object, nothing else.
If the photo clearly shows a banana plant, fruit bunch, or banana shoot, answer:
{"banana_key":"<slug>","confidence":<0..1>}
where <slug> is one of the known cultivar slugs: kluai-nam-wa, kluai-hom-thong, kluai-khai, kluai-hak-muk, kluai-lep-mu-nang, kluai-nak.
If there is no banana in the photo, answer:
{"reason":"no_banana_detected"}
Never answer with prose, markdown, or explanations.`

// Detect sends the image to Gemini and parses the cultivar verdict.
func (c *DetectClient) Detect(ctx context.Context, image []byte, mimeType string) (Detection, error) {
	rid := detectctx.RID(ctx)
	if len(image) == 0 {
		return Detection{}, fmt.Errorf("image is required")
	}
	mimeType = strings.TrimSpace(mimeType)
	if mimeType == "" {
		mimeType = "image/jpeg"
	}

	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[detect] rid=%s stage=client_init err=%v", rid, err)
		return Detection{}, err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(detectPrompt),
		genai.NewPartFromBytes(image, mimeType),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	log.Printf("[detect] rid=%s stage=gemini_start model=%s bytes=%d", rid, c.model, len(image))
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[detect] rid=%s stage=gemini_fail model=%s err=%v", rid, c.model, err)
		return Detection{}, fmt.Errorf("gemini generate: %w", err)
	}
	rawText := res.Text()
	log.Printf("[detect] rid=%s stage=gemini_done model=%s genMs=%d len=%d", rid, c.model, time.Since(start).Milliseconds(), len(rawText))

	d, err := ParseDetection(rawText)
	if err != nil {
		text := strings.ReplaceAll(rawText, "\n", " ")
		if len(text) > 80 {
			text = text[:80]
		}
		log.Printf("[detect] rid=%s stage=parse_fail text=%q err=%v", rid, text, err)
		return Detection{}, err
	}
	log.Printf("[detect] rid=%s stage=parse_ok key=%s confidence=%.2f noBanana=%v totalMs=%d",
		rid, d.BananaKey, d.Confidence, d.NoBanana, time.Since(start).Milliseconds())
	return d, nil
}
