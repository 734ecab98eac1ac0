package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/qabot/backend/internal/service"
)

// Bot 终端会话依赖的聊天能力
type Bot interface {
	Reply(ctx context.Context, query string) (service.Reply, error)
	Teach(ctx context.Context, question, answer string) error
}

type session struct {
	bot Bot
	in  *bufio.Scanner
	out io.Writer
}

func newSession(bot Bot, in io.Reader, out io.Writer) *session {
	return &session{bot: bot, in: bufio.NewScanner(in), out: out}
}

// prompt 输出提示并读取一行；输入结束时返回 io.EOF
func (s *session) prompt(label string) (string, error) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(s.in.Text()), nil
}

// Run 循环读取输入，直到 quit 或输入结束
func (s *session) Run(ctx context.Context) error {
	fmt.Fprintln(s.out, "Let's chat! (type 'quit' to exit)")
	for {
		input, err := s.prompt("You: ")
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if strings.EqualFold(input, "quit") {
			return nil
		}
		if input == "" {
			continue
		}

		reply, err := s.bot.Reply(ctx, input)
		if err != nil {
			fmt.Fprintf(s.out, "BOT: something went wrong: %v\n", err)
			continue
		}
		fmt.Fprintf(s.out, "BOT: %s\n", reply.Answer)

		if !reply.Matched {
			if err := s.teach(ctx, input); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				return err
			}
		}
	}
}

func (s *session) teach(ctx context.Context, question string) error {
	fmt.Fprintln(s.out, "BOT: I don't know the answer. Can you teach me?")
	answer, err := s.prompt("You (Teaching): ")
	if err != nil {
		return err
	}
	if strings.EqualFold(answer, "skip") || answer == "" {
		fmt.Fprintln(s.out, "Learning skipped.")
		return nil
	}

	confirm, err := s.prompt(fmt.Sprintf("Do you want to save the answer: '%s' for the question: '%s'? (yes/no): ", answer, question))
	if err != nil {
		return err
	}
	if !strings.EqualFold(confirm, "yes") {
		fmt.Fprintln(s.out, "Learning skipped.")
		return nil
	}

	if err := s.bot.Teach(ctx, question, answer); err != nil {
		fmt.Fprintf(s.out, "BOT: could not learn that: %v\n", err)
		return nil
	}
	fmt.Fprintln(s.out, "Thank you! I learned a new response!")
	return nil
}
