package conversation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
)

var _ = Describe("WindowPolicy", func() {
	history := []conversation.Turn{
		conversation.UserTurn("Hello"),
		conversation.AssistantTurn("Hi there!"),
		conversation.UserTurn("What is 2+2?"),
		conversation.AssistantTurn("4"),
		conversation.UserTurn("And 3+3?"),
	}

	Describe("Unbounded", func() {
		It("returns every turn", func() {
			Expect(conversation.Unbounded{}.Window(history)).To(Equal(history))
		})
	})

	Describe("LastN", func() {
		It("keeps the most recent turns", func() {
			Expect(conversation.LastN{N: 3}.Window(history)).To(Equal(history[2:]))
		})

		It("never starts the window with an assistant turn", func() {
			Expect(conversation.LastN{N: 4}.Window(history)).To(Equal(history[2:]))
		})

		It("returns the history when it fits", func() {
			Expect(conversation.LastN{N: 10}.Window(history)).To(Equal(history))
		})

		It("treats a non-positive cap as unbounded", func() {
			Expect(conversation.LastN{N: 0}.Window(history)).To(Equal(history))
		})

		It("does not modify its input", func() {
			input := append([]conversation.Turn{}, history...)
			conversation.LastN{N: 2}.Window(input)
			Expect(input).To(Equal(history))
		})
	})

	Describe("NewWindow", func() {
		It("maps zero to Unbounded", func() {
			Expect(conversation.NewWindow(0)).To(Equal(conversation.Unbounded{}))
		})

		It("maps a positive cap to LastN", func() {
			Expect(conversation.NewWindow(6)).To(Equal(conversation.LastN{N: 6}))
		})
	})

	Describe("BuildRequest", func() {
		It("treats a nil policy as unbounded", func() {
			req := conversation.BuildRequest("", history, nil)
			Expect(req.Turns).To(Equal(history))
		})
	})
})
