// Package listing generates, refines and translates product-listing
// copy. The three content types of a generation run concurrently; a
// failed sub-generation leaves its slot empty without cancelling the
// others.
package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"sellerpilot/internal/domain/insight"
	"sellerpilot/internal/llm"
	"sellerpilot/internal/prompt"
)

// noImageInsight replaces the image description when vision analysis
// fails; the listing request still proceeds on text alone.
const noImageInsight = "No image insight available."

// ErrNoContent is returned when every requested sub-generation failed.
var ErrNoContent = errors.New("listing: failed to generate any content")

const (
	seoTemplate = `You are an SEO content expert for e-commerce in India.
Write SEO-friendly content for this product.
Description: "{user_description}"
Category: "{category}"
{format_instructions}`

	whatsappTemplate = `You are a creative marketer for WhatsApp.
Create a catchy caption and promotional message (1-2 emojis).
Description: "{user_description}"
Category: "{category}"
{format_instructions}`

	conversationalTemplate = `You are an AI expert.
Write 3-5 natural search phrases Indian users might use to find this product.
Description: "{user_description}"
Category: "{category}"
{format_instructions}`
)

var (
	seoFields = []prompt.Field{
		{Name: "title", Type: "string", Required: true},
		{Name: "description", Type: "string", Required: true},
		{Name: "tags", Type: "[]string", Required: true},
		{Name: "keywords", Type: "[]string", Required: true},
	}
	whatsappFields = []prompt.Field{
		{Name: "caption", Type: "string", Required: true},
		{Name: "promotional_message", Type: "string", Required: true},
	}
	conversationalFields = []prompt.Field{
		{Name: "search_phrases", Type: "[]string", Required: true},
	}
)

// Config holds listing generation configuration.
type Config struct {
	TextModel      string
	ReasoningModel string
	VisionModel    string
}

// Service generates listing content.
type Service struct {
	llm llm.Provider
	cfg Config
}

// NewService creates a listing service.
func NewService(provider llm.Provider, cfg Config) *Service {
	return &Service{llm: provider, cfg: cfg}
}

// Generate produces the requested content types for one product. The
// request fails only when every requested slot failed.
func (s *Service) Generate(ctx context.Context, req insight.ListingRequest) (insight.GeneratedContent, error) {
	description := req.Description
	if len(req.ImageData) > 0 {
		insightText := s.describeImage(ctx, req)
		description = fmt.Sprintf("%s\n\nImage insight: %s", req.Description, insightText)
	}

	vars := map[string]string{
		"user_description": description,
		"category":         req.Category,
	}
	opts := llm.Options{Model: s.cfg.TextModel, Temperature: 0.5}

	content := insight.GeneratedContent{Category: req.Category}
	requested := 0
	var wg sync.WaitGroup

	if req.Options.SEO {
		requested++
		wg.Add(1)
		go func() {
			defer wg.Done()
			var seo insight.SEOContent
			if err := s.generatePart(ctx, opts, seoTemplate, seoFields, vars, &seo); err != nil {
				log.Printf("listing: seo generation failed: %v", err)
				return
			}
			content.SEOContent = &seo
		}()
	}
	if req.Options.WhatsApp {
		requested++
		wg.Add(1)
		go func() {
			defer wg.Done()
			var wa insight.WhatsAppContent
			if err := s.generatePart(ctx, opts, whatsappTemplate, whatsappFields, vars, &wa); err != nil {
				log.Printf("listing: whatsapp generation failed: %v", err)
				return
			}
			content.WhatsAppContent = &wa
		}()
	}
	if req.Options.Conversational {
		requested++
		wg.Add(1)
		go func() {
			defer wg.Done()
			var conv insight.ConversationalContent
			if err := s.generatePart(ctx, opts, conversationalTemplate, conversationalFields, vars, &conv); err != nil {
				log.Printf("listing: conversational generation failed: %v", err)
				return
			}
			content.ConversationalContent = &conv
		}()
	}
	wg.Wait()

	if requested == 0 || content.Empty() {
		return insight.GeneratedContent{}, ErrNoContent
	}
	return content, nil
}

func (s *Service) generatePart(ctx context.Context, opts llm.Options, tmpl string, fields []prompt.Field, vars map[string]string, out any) error {
	full := map[string]string{"format_instructions": prompt.FormatInstructions(fields)}
	for k, v := range vars {
		full[k] = v
	}
	user, err := prompt.Render(tmpl, full)
	if err != nil {
		return err
	}
	raw, err := s.llm.CompleteStructured(ctx, opts, "", user)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

func (s *Service) describeImage(ctx context.Context, req insight.ListingRequest) string {
	text, err := s.llm.DescribeImage(ctx,
		llm.Options{Model: s.cfg.VisionModel, Temperature: 0.4},
		"Describe this image for an e-commerce listing:", req.ImageMIME, req.ImageData)
	if err != nil || text == "" {
		log.Printf("listing: image analysis failed: %v", err)
		return noImageInsight
	}
	return text
}

// Improve rewrites existing content for clarity and appeal without
// changing its structure.
func (s *Service) Improve(ctx context.Context, content insight.GeneratedContent) (insight.GeneratedContent, error) {
	encoded, err := json.Marshal(content)
	if err != nil {
		return insight.GeneratedContent{}, err
	}
	raw, err := s.llm.CompleteStructured(ctx,
		llm.Options{Model: s.cfg.ReasoningModel, Temperature: 0.6},
		"You are an expert e-commerce copywriter. Improve this content JSON without changing its structure.",
		"Improve this content: "+string(encoded))
	if err != nil {
		return insight.GeneratedContent{}, fmt.Errorf("listing: improve content: %w", err)
	}
	var improved insight.GeneratedContent
	if err := json.Unmarshal(raw, &improved); err != nil {
		return insight.GeneratedContent{}, fmt.Errorf("listing: parse improved content: %w", err)
	}
	if improved.Category == "" {
		improved.Category = content.Category
	}
	return improved, nil
}

// Translate translates every non-empty text field of the content to
// the target language, leaving structure and empty fields untouched.
func (s *Service) Translate(ctx context.Context, content insight.GeneratedContent, language string) (insight.GeneratedContent, error) {
	translate := func(text string) (string, error) {
		if text == "" {
			return text, nil
		}
		return s.llm.CompleteText(ctx,
			llm.Options{Model: s.cfg.ReasoningModel, Temperature: 0.2},
			fmt.Sprintf("Translate this text to %s. Only reply with the translation.", language),
			text)
	}

	var err error
	if seo := content.SEOContent; seo != nil {
		if seo.Title, err = translate(seo.Title); err != nil {
			return insight.GeneratedContent{}, fmt.Errorf("listing: translate: %w", err)
		}
		if seo.Description, err = translate(seo.Description); err != nil {
			return insight.GeneratedContent{}, fmt.Errorf("listing: translate: %w", err)
		}
	}
	if wa := content.WhatsAppContent; wa != nil {
		if wa.Caption, err = translate(wa.Caption); err != nil {
			return insight.GeneratedContent{}, fmt.Errorf("listing: translate: %w", err)
		}
		if wa.PromotionalMessage, err = translate(wa.PromotionalMessage); err != nil {
			return insight.GeneratedContent{}, fmt.Errorf("listing: translate: %w", err)
		}
	}
	if conv := content.ConversationalContent; conv != nil {
		for i, phrase := range conv.SearchPhrases {
			if conv.SearchPhrases[i], err = translate(phrase); err != nil {
				return insight.GeneratedContent{}, fmt.Errorf("listing: translate: %w", err)
			}
		}
	}
	return content, nil
}
