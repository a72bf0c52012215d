package kyc

import (
	_ "embed"
	"strings"
)

//go:embed prompts/extract_fields.txt
var extractFieldsPrompt string

const summarizePromptPrefix = "Summarize the following KYC data:\n"

func buildExtractPrompt(rawText string) string {
	return strings.ReplaceAll(extractFieldsPrompt, "{{TEXT}}", rawText)
}

func buildSummarizePrompt(extractedData string) string {
	return summarizePromptPrefix + extractedData
}

func buildChatPrompt(kycTexts []string, query string) string {
	var b strings.Builder
	b.WriteString("User's KYC Information:\n")
	b.WriteString(strings.Join(kycTexts, "\n"))
	b.WriteString("\n\nUser Query: ")
	b.WriteString(query)
	b.WriteString("\n\nAnswer:")
	return b.String()
}
