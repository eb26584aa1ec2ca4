package assistant_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudwego/eino/schema"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/teslamotors/vehicle-assistant/pkg/assistant"
)

var _ = Describe("Assistant", func() {
	var (
		ctx  context.Context
		fake *fakeChatModel
		bot  *assistant.Assistant
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = &fakeChatModel{}
		bot = assistant.NewWithChatModel(fake, nil)
	})

	Describe("New", func() {
		It("requires an API key", func() {
			GinkgoT().Setenv(assistant.EnvOpenAIAPIKey, "")
			_, err := assistant.New(ctx, &assistant.Config{})
			Expect(err).To(MatchError(assistant.ErrMissingAPIKey))
		})

		It("falls back to the environment", func() {
			GinkgoT().Setenv(assistant.EnvOpenAIAPIKey, "sk-test")
			bot, err := assistant.New(ctx, nil)
			Expect(err).NotTo(HaveOccurred())
			Expect(bot.Model()).To(Equal(assistant.DefaultModel))
		})

		It("honors an explicit model", func() {
			bot, err := assistant.New(ctx, &assistant.Config{APIKey: "sk-test", Model: "gpt-4o-mini"})
			Expect(err).NotTo(HaveOccurred())
			Expect(bot.Model()).To(Equal("gpt-4o-mini"))
		})
	})

	Describe("GenerateResponse", func() {
		It("returns the reply and token usage", func() {
			fake.reply("Your battery is at 80%.", 42)
			resp := bot.GenerateResponse(ctx, "How much charge do I have?")
			Expect(resp.Content).To(Equal("Your battery is at 80%."))
			Expect(resp.TokensUsed).To(Equal(42))
			Expect(resp.Model).To(Equal(assistant.DefaultModel))
		})

		It("passes sampling options to the model", func() {
			temperature := float32(0.2)
			bot = assistant.NewWithChatModel(fake, &assistant.Config{Temperature: &temperature, MaxTokens: 64})
			bot.GenerateResponse(ctx, "hello")
			Expect(fake.options).To(HaveLen(1))
			Expect(*fake.options[0].Temperature).To(BeNumerically("~", 0.2, 1e-6))
			Expect(*fake.options[0].MaxTokens).To(Equal(64))
		})

		It("honors a zero temperature", func() {
			var temperature float32
			bot = assistant.NewWithChatModel(fake, &assistant.Config{Temperature: &temperature})
			bot.GenerateResponse(ctx, "hello")
			Expect(*fake.options[0].Temperature).To(BeZero())
		})

		It("uses the default sampling options", func() {
			bot.GenerateResponse(ctx, "hello")
			Expect(*fake.options[0].Temperature).To(BeNumerically("~", assistant.DefaultTemperature, 1e-6))
			Expect(*fake.options[0].MaxTokens).To(Equal(assistant.DefaultMaxTokens))
		})

		It("sends the system prompt, history and prompt in order", func() {
			bot.AddToHistory("user", "earlier question")
			bot.AddToHistory("assistant", "earlier answer")
			bot.GenerateResponse(ctx, "new question")

			request := fake.lastRequest()
			Expect(request).To(HaveLen(4))
			Expect(request[0].Role).To(Equal(schema.System))
			Expect(request[1].Content).To(Equal("earlier question"))
			Expect(request[2].Role).To(Equal(schema.Assistant))
			Expect(request[3].Role).To(Equal(schema.User))
			Expect(request[3].Content).To(Equal("new question"))
		})

		It("records the exchange in the history", func() {
			fake.reply("Locked.", 5)
			bot.GenerateResponse(ctx, "Are the doors locked?")
			Expect(bot.History()).To(Equal([]assistant.Entry{
				{Role: schema.User, Content: "Are the doors locked?"},
				{Role: schema.Assistant, Content: "Locked."},
			}))
		})

		It("replaces the system prompt", func() {
			bot.GenerateResponse(ctx, "hi", assistant.WithSystemPrompt("Be brief."))
			Expect(fake.lastRequest()[0].Content).To(Equal("Be brief."))
		})

		It("appends the vehicle state to the system prompt", func() {
			bot.GenerateResponse(ctx, "hi", assistant.WithVehicleContext(map[string]interface{}{
				"battery_level": 80,
			}))
			system := fake.lastRequest()[0].Content
			Expect(system).To(HavePrefix("You are an AI assistant"))
			Expect(system).To(ContainSubstring("Current vehicle state:"))
			Expect(system).To(ContainSubstring(`"battery_level": 80`))
		})

		It("ignores an empty vehicle state", func() {
			bot.GenerateResponse(ctx, "hi", assistant.WithVehicleContext(map[string]interface{}{}))
			Expect(fake.lastRequest()[0].Content).NotTo(ContainSubstring("Current vehicle state:"))
		})

		It("reports failures in the content", func() {
			fake.err = errors.New("rate limited")
			resp := bot.GenerateResponse(ctx, "hello")
			Expect(resp.Content).To(Equal("Error generating response: rate limited"))
			Expect(resp.TokensUsed).To(BeZero())
			Expect(bot.History()).To(BeEmpty())
		})

		It("keeps only the most recent exchanges", func() {
			for i := 1; i <= 15; i++ {
				role := "user"
				if i%2 == 0 {
					role = "assistant"
				}
				bot.AddToHistory(role, fmt.Sprintf("message %d", i))
			}
			history := bot.History()
			Expect(history).To(HaveLen(assistant.DefaultHistoryLimit))
			Expect(history[0]).To(Equal(assistant.Entry{Role: schema.Assistant, Content: "message 6"}))
			Expect(history[9]).To(Equal(assistant.Entry{Role: schema.User, Content: "message 15"}))

			bot.GenerateResponse(ctx, "latest")
			// System prompt, ten history entries and the prompt.
			Expect(fake.lastRequest()).To(HaveLen(12))
			Expect(bot.History()[0].Content).To(Equal("message 8"))
		})

		It("forgets the history when cleared", func() {
			bot.GenerateResponse(ctx, "hello")
			bot.ClearHistory()
			Expect(bot.History()).To(BeEmpty())
			bot.GenerateResponse(ctx, "again")
			Expect(fake.lastRequest()).To(HaveLen(2))
		})
	})

	Describe("ParseCommand", func() {
		state := map[string]interface{}{"state": "online"}

		It("decodes the command object", func() {
			fake.reply(`{"command": "start_climate", "parameters": {"temperature": 23}, "confidence": 0.9}`, 30)
			intent := bot.ParseCommand(ctx, "Turn on the AC at 23 degrees", state)
			Expect(intent.Command).To(Equal(assistant.CommandStartClimate))
			Expect(intent.Confidence).To(BeNumerically("~", 0.9))
			temp, ok := intent.Float("temperature")
			Expect(ok).To(BeTrue())
			Expect(temp).To(BeNumerically("==", 23))
		})

		It("uses the command parser prompt", func() {
			fake.reply(`{"command": "honk", "parameters": {}, "confidence": 0.95}`, 10)
			bot.ParseCommand(ctx, "beep beep", state)
			request := fake.lastRequest()
			Expect(request[0].Content).To(Equal("You are a command parser for a Tesla vehicle."))
			prompt := request[len(request)-1].Content
			Expect(prompt).To(ContainSubstring(`"beep beep"`))
			Expect(prompt).To(ContainSubstring(`"state": "online"`))
			Expect(prompt).To(ContainSubstring(`{"command": "lock", "parameters": {}, "confidence": 0.98}`))
		})

		It("tolerates text around the JSON object", func() {
			fake.reply("Sure! {\"command\": \"lock\", \"parameters\": {}, \"confidence\": 0.98} Done.", 10)
			Expect(bot.ParseCommand(ctx, "lock it", state).Command).To(Equal(assistant.CommandLock))
		})

		It("returns an unknown intent for prose", func() {
			fake.reply("I'm not sure what you mean.", 10)
			Expect(bot.ParseCommand(ctx, "sing a song", state)).To(Equal(assistant.UnknownIntent()))
		})

		It("returns an unknown intent when the model fails", func() {
			fake.err = errors.New("timeout")
			Expect(bot.ParseCommand(ctx, "honk", state)).To(Equal(assistant.UnknownIntent()))
		})
	})

	Describe("helpers", func() {
		data := map[string]interface{}{"battery_level": 55}

		It("explains vehicle data", func() {
			fake.reply("Your car is half charged.", 12)
			Expect(bot.ExplainVehicleData(ctx, data)).To(Equal("Your car is half charged."))
			Expect(fake.lastRequest()[len(fake.lastRequest())-1].Content).To(ContainSubstring(`"battery_level": 55`))
		})

		It("gives advice", func() {
			fake.reply("Charge tonight.", 12)
			Expect(bot.GetAdvice(ctx, data)).To(Equal("Charge tonight."))
			Expect(fake.lastRequest()[len(fake.lastRequest())-1].Content).To(ContainSubstring("2-3 specific recommendations"))
		})

		It("returns the error text on failure", func() {
			fake.err = errors.New("offline")
			Expect(bot.GetAdvice(ctx, data)).To(HavePrefix("Error generating response:"))
		})
	})
})
