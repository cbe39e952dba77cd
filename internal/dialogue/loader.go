package dialogue

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"restobot/internal/entity"
	"restobot/pkg/nlp"
)

// ArtifactReader fetches catalog, corpus and model files by path or URL.
type ArtifactReader interface {
	Read(ctx context.Context, path string) ([]byte, error)
}

type LocalReader struct{}

func (LocalReader) Read(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

type LoadOptions struct {
	CatalogPath     string
	DialoguesPath   string
	AdsPath         string
	IntentModelPath string
	HintModelPath   string
	RegistryOptions
}

// LoadRegistry reads every artifact through reader and builds the registry. Any failure
// wraps ErrConfiguration.
func LoadRegistry(ctx context.Context, reader ArtifactReader, opts LoadOptions, rng Random) (*Registry, error) {
	components, err := LoadComponents(ctx, reader, opts)
	if err != nil {
		return nil, err
	}
	return NewRegistry(components, opts.RegistryOptions, rng)
}

func LoadComponents(ctx context.Context, reader ArtifactReader, opts LoadOptions) (Components, error) {
	var c Components

	data, err := readArtifact(ctx, reader, "catalog", opts.CatalogPath)
	if err != nil {
		return c, err
	}
	if c.Catalog, err = ParseCatalog(data); err != nil {
		return c, err
	}

	if opts.DialoguesPath != "" {
		data, err := readArtifact(ctx, reader, "dialogues", opts.DialoguesPath)
		if err != nil {
			return c, err
		}
		c.Dialogues = ParseDialogues(data)
	}

	if opts.AdsPath != "" {
		data, err := readArtifact(ctx, reader, "advertising corpus", opts.AdsPath)
		if err != nil {
			return c, err
		}
		if c.Advertising, err = ParseAdvertising(data); err != nil {
			return c, err
		}
	}

	if opts.IntentModelPath != "" {
		model, err := loadModel(ctx, reader, "intent model", opts.IntentModelPath)
		if err != nil {
			return c, err
		}
		c.IntentModel = model
	}

	if opts.HintsEnabled && opts.HintModelPath != "" {
		model, err := loadModel(ctx, reader, "advertising model", opts.HintModelPath)
		if err != nil {
			return c, err
		}
		c.HintModel = model
	}

	return c, nil
}

func readArtifact(ctx context.Context, reader ArtifactReader, kind, path string) ([]byte, error) {
	if path == "" {
		return nil, configError("%s path is empty", kind)
	}
	data, err := reader.Read(ctx, path)
	if err != nil {
		return nil, configError("read %s %s: %v", kind, path, err)
	}
	return data, nil
}

func loadModel(ctx context.Context, reader ArtifactReader, kind, path string) (*nlp.LinearModel, error) {
	data, err := readArtifact(ctx, reader, kind, path)
	if err != nil {
		return nil, err
	}
	model, err := nlp.UnmarshalLinearModel(data)
	if err != nil {
		return nil, configError("%s %s: %v", kind, path, err)
	}
	return model, nil
}

// ParseCatalog decodes the YAML catalog. Unknown keys are rejected.
func ParseCatalog(data []byte) (entity.Catalog, error) {
	var catalog entity.Catalog
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&catalog); err != nil {
		return entity.Catalog{}, configError("decode catalog: %v", err)
	}
	return catalog, nil
}

// ParseDialogues reads blank-line separated blocks whose first two lines are the question
// and the answer. Blocks with fewer lines are skipped.
func ParseDialogues(data []byte) []entity.DialogueEntry {
	var entries []entity.DialogueEntry
	for _, block := range splitBlocks(data) {
		if len(block) < 2 {
			continue
		}
		question := strings.ToLower(stripDash(block[0]))
		answer := stripDash(block[1])
		if question == "" || answer == "" {
			continue
		}
		entries = append(entries, entity.DialogueEntry{Question: question, Answer: answer})
	}
	return entries
}

// ParseAdvertising reads blocks of "[label]", question and answer lines.
func ParseAdvertising(data []byte) ([]entity.AdvertisingExample, error) {
	var examples []entity.AdvertisingExample
	for _, block := range splitBlocks(data) {
		if len(block) < 3 {
			continue
		}
		header := block[0]
		if !strings.HasPrefix(header, "[") || !strings.HasSuffix(header, "]") {
			return nil, configError("advertising corpus: malformed label line %q", header)
		}
		examples = append(examples, entity.AdvertisingExample{
			Label:    strings.TrimSpace(header[1 : len(header)-1]),
			Question: stripDash(block[1]),
			Answer:   stripDash(block[2]),
		})
	}
	return examples, nil
}

func splitBlocks(data []byte) [][]string {
	var (
		blocks  [][]string
		current []string
	)
	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

func stripDash(line string) string {
	return strings.TrimSpace(strings.TrimPrefix(line, "- "))
}

// TrainIntentModel fits the word uni/bigram classifier on lemmatized intent examples.
func TrainIntentModel(catalog *Catalog, lemmatizer nlp.ILemmatizer) (*nlp.LinearModel, error) {
	var docs, labels []string
	for _, intent := range catalog.Intents() {
		for _, example := range intent.Examples {
			if doc := lemmatizer.Lemmatize(example); doc != "" {
				docs = append(docs, doc)
				labels = append(labels, intent.Name)
			}
		}
	}
	model, err := nlp.TrainCentroid(docs, labels, nlp.NewVectorizer(nlp.AnalyzerWord, 1, 2))
	if err != nil {
		return nil, configError("train intent model: %v", err)
	}
	return model, nil
}

// TrainHintModel fits the char trigram classifier on the lowercased advertising questions.
func TrainHintModel(examples []entity.AdvertisingExample) (*nlp.LinearModel, error) {
	var docs, labels []string
	for _, e := range examples {
		if question := strings.ToLower(e.Question); question != "" {
			docs = append(docs, question)
			labels = append(labels, e.Label)
		}
	}
	model, err := nlp.TrainCentroid(docs, labels, nlp.NewVectorizer(nlp.AnalyzerChar, 3, 3))
	if err != nil {
		return nil, configError("train advertising model: %v", err)
	}
	return model, nil
}
