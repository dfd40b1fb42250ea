package conversation_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/minhyannv/gpt-chat-go/pkg/conversation"
)

var _ = Describe("Session", func() {
	var session *conversation.Session

	BeforeEach(func() {
		session = conversation.NewSession()
	})

	Describe("NewSession", func() {
		It("starts empty", func() {
			Expect(session.Len()).To(Equal(0))
			Expect(session.Turns()).To(BeEmpty())
		})

		It("assigns a unique id", func() {
			other := conversation.NewSession()
			Expect(session.ID).NotTo(BeEmpty())
			Expect(session.ID).NotTo(Equal(other.ID))
		})
	})

	Describe("Append", func() {
		It("keeps insertion order", func() {
			Expect(session.Append(conversation.UserTurn("Hello"))).To(Succeed())
			Expect(session.Append(conversation.AssistantTurn("Hi there!"))).To(Succeed())

			Expect(session.Turns()).To(Equal([]conversation.Turn{
				{Role: conversation.RoleUser, Content: "Hello"},
				{Role: conversation.RoleAssistant, Content: "Hi there!"},
			}))
		})

		It("accepts empty content", func() {
			Expect(session.Append(conversation.UserTurn(""))).To(Succeed())
			Expect(session.Len()).To(Equal(1))
		})

		It("rejects roles other than user and assistant", func() {
			err := session.Append(conversation.Turn{Role: conversation.RoleSystem, Content: "x"})
			Expect(err).To(MatchError(ContainSubstring("invalid turn role")))
			Expect(session.Len()).To(Equal(0))
		})
	})

	Describe("Turns", func() {
		It("returns a copy that cannot alter the history", func() {
			Expect(session.Append(conversation.UserTurn("Hello"))).To(Succeed())

			turns := session.Turns()
			turns[0].Content = "tampered"

			Expect(session.Turns()[0].Content).To(Equal("Hello"))
		})
	})

	Describe("Reset", func() {
		It("clears the history", func() {
			Expect(session.Append(conversation.UserTurn("Hello"))).To(Succeed())
			session.Reset()
			Expect(session.Len()).To(Equal(0))
		})
	})

	Describe("Request", func() {
		BeforeEach(func() {
			Expect(session.Append(conversation.UserTurn("Hello"))).To(Succeed())
			Expect(session.Append(conversation.AssistantTurn("Hi there!"))).To(Succeed())
			Expect(session.Append(conversation.UserTurn("What is 2+2?"))).To(Succeed())
		})

		It("carries the full history by default", func() {
			req := session.Request()
			Expect(req.Turns).To(HaveLen(session.Len()))
			Expect(req.Turns).To(Equal(session.Turns()))
			Expect(req.System).To(BeEmpty())
		})

		It("is identical for an unchanged history", func() {
			Expect(session.Request()).To(Equal(session.Request()))
		})

		It("does not share memory with the history", func() {
			req := session.Request()
			req.Turns[0].Content = "tampered"
			Expect(session.Turns()[0].Content).To(Equal("Hello"))
		})

		It("includes the system prompt without storing it", func() {
			s := conversation.NewSession(conversation.WithSystemPrompt("Be brief."))
			Expect(s.Append(conversation.UserTurn("Hello"))).To(Succeed())

			req := s.Request()
			Expect(req.System).To(Equal("Be brief."))
			Expect(req.Turns).To(HaveLen(1))
			Expect(s.Len()).To(Equal(1))
		})

		It("applies the window policy", func() {
			s := conversation.NewSession(conversation.WithWindow(conversation.LastN{N: 1}))
			Expect(s.Append(conversation.UserTurn("Hello"))).To(Succeed())
			Expect(s.Append(conversation.AssistantTurn("Hi there!"))).To(Succeed())
			Expect(s.Append(conversation.UserTurn("What is 2+2?"))).To(Succeed())

			Expect(s.Request().Turns).To(Equal([]conversation.Turn{
				conversation.UserTurn("What is 2+2?"),
			}))
			Expect(s.Len()).To(Equal(3))
		})
	})
})
