package services

import (
	"fmt"
	"strings"

	apperrors "learnai_go_backend/internal/errors"
	"learnai_go_backend/internal/models"

	openai "github.com/sashabaranov/go-openai"
)

// Feature selects which system prompt the builder prepends.
type Feature string

const (
	FeatureChat      Feature = "chat"
	FeatureSummarize Feature = "summarize"
	FeatureStudyPlan Feature = "study-plan"
	FeatureExamPlan  Feature = "exam-plan"
)

// SummaryOptions selects one cell of the style/length directive matrix.
type SummaryOptions struct {
	Style  string // bullet|paragraph|outline
	Length string // short|medium|long
}

// The provider defaults to the input language unless told otherwise, so every
// chat prompt carries an explicit directive naming the target language. For
// languages written in a non-Latin script the directive also names the script,
// otherwise models tend to answer in romanized text.
var scriptDirectives = map[string]string{
	"Hindi":    "Write in Devanagari script (for example: नमस्ते), never in romanized Hindi.",
	"Mandarin": "Write in simplified Chinese characters (for example: 你好), never in pinyin.",
	"Japanese": "Write in Japanese script using kanji and kana (for example: こんにちは), never in romaji.",
}

// Each style/length combination gets its own instruction sentence.
var summaryDirectives = map[string]map[string]string{
	"bullet": {
		"short":  "Create a very brief summary of 3-5 bullet points covering only the essentials.",
		"medium": "Create a summary as a list of bullet points covering the key concepts and facts.",
		"long":   "Create a detailed summary as an extensive list of bullet points covering all important aspects.",
	},
	"paragraph": {
		"short":  "Create a very brief summary of 2-3 sentences in a single paragraph.",
		"medium": "Create a comprehensive summary of the key points in flowing paragraphs.",
		"long":   "Create a detailed multi-paragraph summary covering all important aspects of the material.",
	},
	"outline": {
		"short":  "Create a compact outline with only the main topics, one line each.",
		"medium": "Create an outline with main topics and their key subtopics.",
		"long":   "Create a detailed outline with main topics, subtopics and supporting details under each.",
	},
}

const chatPersona = `You are LearnAI, an intelligent educational assistant. You help students with:
- Answering academic questions clearly and thoroughly
- Explaining complex concepts in simple terms
- Providing study tips and learning strategies
- Helping with homework and assignments`

// PromptBuilder composes the ordered message list handed to the completion
// gateway: exactly one system message, the history verbatim, the new user
// message last.
type PromptBuilder struct {
	summaryMinChars int
}

func NewPromptBuilder(summaryMinChars int) *PromptBuilder {
	return &PromptBuilder{summaryMinChars: summaryMinChars}
}

type BuildInput struct {
	Feature  Feature
	Input    string
	Language string
	History  []models.ChatMessage
	Subject  string
	Summary  SummaryOptions
}

func (b *PromptBuilder) Build(in BuildInput) ([]openai.ChatCompletionMessage, error) {
	if strings.TrimSpace(in.Input) == "" {
		return nil, apperrors.NewValidationError("Please provide a message")
	}
	if in.Feature == FeatureSummarize && len(strings.TrimSpace(in.Input)) < b.summaryMinChars {
		return nil, apperrors.NewValidationError(
			fmt.Sprintf("Please provide at least %d characters of text", b.summaryMinChars))
	}

	system, err := b.systemPrompt(in)
	if err != nil {
		return nil, err
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(in.History)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, msg := range in.History {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    msg.Role,
			Content: msg.Content,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: in.Input,
	})

	return messages, nil
}

func (b *PromptBuilder) systemPrompt(in BuildInput) (string, error) {
	switch in.Feature {
	case FeatureChat:
		return b.chatPrompt(in.Language, in.Subject), nil
	case FeatureSummarize:
		return b.summaryPrompt(in.Summary)
	case FeatureStudyPlan:
		return studyPlanPrompt, nil
	case FeatureExamPlan:
		return examPlanPrompt, nil
	default:
		return "", apperrors.NewValidationError(fmt.Sprintf("Unknown feature %q", in.Feature))
	}
}

func (b *PromptBuilder) chatPrompt(language, subject string) string {
	if language == "" {
		language = "English"
	}

	var sb strings.Builder
	sb.WriteString(chatPersona)
	if subject != "" {
		sb.WriteString(fmtSubject(subject))
	}
	sb.WriteString(fmt.Sprintf("\n\nIMPORTANT: Your entire response must be written in %s. Every sentence, heading and example must be in %s, not merely a mention of it.", language, language))
	if script, ok := scriptDirectives[language]; ok {
		sb.WriteString(" ")
		sb.WriteString(script)
	}
	sb.WriteString(" Be friendly, encouraging, and educational.")
	return sb.String()
}

func fmtSubject(subject string) string {
	return fmt.Sprintf("\n\nThe student is currently studying %s; keep answers grounded in that subject where relevant.", subject)
}

func (b *PromptBuilder) summaryPrompt(opts SummaryOptions) (string, error) {
	style := opts.Style
	if style == "" {
		style = "bullet"
	}
	length := opts.Length
	if length == "" {
		length = "medium"
	}

	byLength, ok := summaryDirectives[style]
	if !ok {
		return "", apperrors.NewValidationError("Style must be one of: bullet, paragraph, outline")
	}
	directive, ok := byLength[length]
	if !ok {
		return "", apperrors.NewValidationError("Length must be one of: short, medium, long")
	}

	return fmt.Sprintf(`You are an expert academic summarizer. Create clear, concise summaries that help students learn and retain information effectively.

%s

Include main concepts and ideas, key terms and definitions, important facts and figures, and relationships between concepts.

After the summary, add a section that starts with the exact line "KEY POINTS:" followed by the most important takeaways, one per line, each starting with "- ".`, directive), nil
}

const studyPlanPrompt = `You are an expert educational planner. Create effective, personalized study plans that maximize learning efficiency.

Generate a structured study plan that includes:
1. Session breakdown (how to divide the time)
2. Specific learning objectives
3. Recommended study techniques
4. Practice activities
5. Self-assessment checkpoints
6. Tips for effective learning

Format the response in a clear, actionable way.`

const examPlanPrompt = `You are an expert exam preparation coach. Create strategic, comprehensive exam prep plans that help students succeed.

Generate a detailed preparation strategy that includes:
1. Day-by-day study schedule
2. Topic prioritization (based on complexity and importance)
3. Recommended study methods for each topic
4. Practice test schedule
5. Revision strategy for final days
6. Tips for exam day
7. Common mistakes to avoid

Respond with a single JSON object of the shape:
{"overview": "...", "dailySchedule": [{"day": 1, "topics": ["..."], "duration": 120, "priority": "High"}], "tips": ["..."]}
The overview must cover the prioritization, study methods, practice schedule, revision strategy, exam-day tips and common mistakes. Duration is the total minutes planned for that day. Make the plan realistic and achievable within the timeframe.`

// StudyPlanUserPrompt shapes the study-plan request the way the planner expects it.
func StudyPlanUserPrompt(subject, topic string, duration int, deadline, priority string) string {
	return fmt.Sprintf(`Create a detailed study plan for a student with the following requirements:

Subject: %s
Topic: %s
Available Study Time: %d minutes
Deadline: %s
Priority Level: %s`, subject, topic, duration, deadline, priority)
}

// ExamPlanUserPrompt shapes the exam-plan request.
func ExamPlanUserPrompt(examName, subject string, daysUntilExam int, topics []string) string {
	return fmt.Sprintf(`Create a comprehensive exam preparation plan:

Exam: %s
Subject: %s
Days Until Exam: %d days
Topics to Cover: %s`, examName, subject, daysUntilExam, strings.Join(topics, ", "))
}
