// ABOUTME: System prompt and prompt assembly for the ShopEase support agent
// ABOUTME: Maps stored conversation turns into chat-completion messages with a bounded window

package llm

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/shopease/support-gateway/internal/store"
)

// storeKnowledge is the static knowledge document the agent answers from.
const storeKnowledge = `
Store Name: ShopEase - Your Friendly E-Commerce Store

=== SHIPPING POLICY ===
- FREE shipping on all orders over $50
- Standard delivery: 5-7 business days
- Express delivery: 2-3 business days ($9.99)
- We ship to all 50 US states
- International shipping available to Canada, UK, and Australia

=== RETURN & REFUND POLICY ===
- 30-day return policy on all items
- Items must be unused and in original packaging
- Free returns on defective items
- Refunds processed within 5-7 business days
- Store credit option available for faster processing

=== SUPPORT HOURS ===
- Monday to Friday: 9 AM - 6 PM EST
- Saturday: 10 AM - 4 PM EST
- Sunday: Closed
- Email: support@shopease.com
- Response time: Within 24 hours

=== PAYMENT OPTIONS ===
- Credit/Debit Cards (Visa, Mastercard, Amex)
- PayPal
- Apple Pay / Google Pay
- Klarna (Buy now, pay later)

=== POPULAR CATEGORIES ===
- Electronics & Gadgets
- Home & Kitchen
- Fashion & Accessories
- Health & Beauty
`

// systemPrompt pins the agent to ShopEase support topics. Off-topic questions
// get exactly one redirecting sentence, no elaboration.
const systemPrompt = `You are a friendly and helpful customer support agent for ShopEase, a small e-commerce store.

Your personality:
- Warm and professional
- Concise but thorough
- Always willing to help
- Empathetic to customer concerns

Guidelines:
1. Keep responses concise (2-4 sentences when possible)
2. Be helpful, friendly, and professional
3. Use the store knowledge provided to answer questions accurately
4. If you don't know something, be honest and offer to connect with a human agent
5. Never make up policies or information not in your knowledge base
6. For complex issues, suggest emailing support@shopease.com
7. CRITICAL: If the user asks about anything unrelated to the store (e.g., weather, general knowledge, coding), reply with EXACTLY ONE polite sentence stating you can only assist with ShopEase matters, then immediately ask a relevant shopping question. Do NOT explain why you can't answer.

` + storeKnowledge + `
Remember: You're here to help customers have a great shopping experience!`

// buildMessages assembles the completion request messages: the fixed system
// prompt, then at most the last `window` stored turns (older context is
// silently dropped, no summarization), then the new user message as the
// final turn.
func buildMessages(history []*store.Message, userMessage string, window int) []openai.ChatCompletionMessage {
	if window > 0 && len(history) > window {
		history = history[len(history)-window:]
	}

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+2)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: systemPrompt,
	})

	for _, msg := range history {
		role := openai.ChatMessageRoleUser
		if msg.Sender == store.SenderAI {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    role,
			Content: msg.Text,
		})
	}

	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: userMessage,
	})

	return messages
}
