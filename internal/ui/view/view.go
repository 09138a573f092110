package view

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/studydesk/studydesk/internal/corpus"
	"github.com/studydesk/studydesk/internal/grading"
	"github.com/studydesk/studydesk/internal/progress"
	"github.com/studydesk/studydesk/internal/search"
	"github.com/studydesk/studydesk/internal/session"
	"github.com/studydesk/studydesk/internal/ui/components"
	"github.com/studydesk/studydesk/internal/ui/theme"
)

const barWidth = 40

// fallbackTag is used for questions and notes without tags.
const fallbackTag = "综合"

func badges(items ...string) string {
	parts := make([]string, 0, len(items))
	for _, s := range items {
		if s != "" {
			parts = append(parts, theme.Badge.Render("["+s+"]"))
		}
	}
	return strings.Join(parts, " ")
}

func row(key, value string) string {
	return theme.Key.Render(key) + value
}

// KnowledgeCard renders one knowledge search result.
func KnowledgeCard(h session.KnowledgeHit) string {
	k := h.Item
	primary := fallbackTag
	if len(k.Tags) > 0 {
		primary = k.Tags[0]
	}
	lines := []string{
		badges(append([]string{k.Chapter}, k.Tags...)...),
		theme.Title.Render(k.Title),
		ParseContent(k.Content).String(),
		theme.Hint.Render(fmt.Sprintf("练习本主题题目（%d）: studydesk quiz %s", h.Related, primary)),
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}

// QuestionCard renders a question with the learner's state. Objective
// answers are revealed once the question has been answered; subjective
// references once the learner asked for them.
func QuestionCard(q corpus.Question, rec progress.Record, touched bool, key *grading.Key) string {
	lines := []string{
		badges(append([]string{q.ID, q.Source, q.Type.Label()}, q.Tags...)...),
		theme.Title.Render(q.Stem),
	}

	if q.Type.Objective() {
		answered := touched && rec.Answered()
		correct := key.Letters(q.ID)
		for i, opt := range q.Options {
			l, _ := grading.Label(i)
			line := fmt.Sprintf("%s. %s", l, opt)
			mark := "  "
			if slices.Contains(rec.UserLetters, l) {
				mark = "> "
			}
			switch {
			case answered && slices.Contains(correct, l):
				line = theme.Correct.Render(line)
			case answered && slices.Contains(rec.UserLetters, l):
				line = theme.Incorrect.Render(line)
			}
			lines = append(lines, mark+line)
		}
		if answered {
			verdict := theme.Correct.Render("回答正确")
			if rec.Correct != progress.Correct {
				verdict = theme.Incorrect.Render("回答错误")
			}
			lines = append(lines,
				"",
				row("你的答案", grading.AnswerText(q, rec.UserLetters)),
				row("判定", verdict),
				row("正确答案", grading.AnswerText(q, correct)),
			)
			if q.Explanation != "" {
				lines = append(lines, row("解释", q.Explanation))
			}
		}
		return theme.Card.Render(strings.Join(lines, "\n"))
	}

	if touched && rec.Revealed {
		draft := rec.SubjectiveText
		if draft == "" {
			draft = "（未填写）"
		}
		lines = append(lines,
			"",
			row("你的作答", draft),
			row("参考答案", grading.Reference(q)),
		)
	} else if touched && rec.SubjectiveText != "" {
		lines = append(lines, row("草稿", rec.SubjectiveText))
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}

// Pager renders the page summary and page buttons.
func Pager(total, number, pages int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "共 %d 题 · 第 %d/%d 页  ", total, number, pages)
	for i, p := range search.PageList(pages, number) {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case p == search.Ellipsis:
			b.WriteString("…")
		case p == number:
			b.WriteString(theme.Selected.Render("[" + strconv.Itoa(p) + "]"))
		default:
			b.WriteString(strconv.Itoa(p))
		}
	}
	return b.String()
}

// Board renders the progress board.
func Board(b progress.Board) string {
	lines := []string{
		theme.Title.Render("学习进度"),
		row("客观题完成度", b.Objective.Completion()),
		components.NewProgressBar("", b.Objective.Answered, b.Objective.Total, barWidth).View(),
		row("客观题正确率", b.Objective.Rate()),
		components.NewProgressBar("", b.Objective.Correct, b.Objective.Answered, barWidth).View(),
		row("已查看参考答案", strconv.Itoa(b.Revealed)),
		"",
	}
	for _, t := range b.ByType {
		lines = append(lines, row(t.Type.Label(), fmt.Sprintf("%s · 正确率 %s", t.Completion(), t.Rate())))
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}

// LedgerSummary is a one-line total over every stored record.
func LedgerSummary(l *progress.Ledger) string {
	return theme.Hint.Render(fmt.Sprintf("已记录 %d 题 · 已作答 %d 题 · 答对 %d 题",
		l.Len(), l.Answered(), l.CorrectCount()))
}

// WrongList renders the questions answered incorrectly.
func WrongList(qs []corpus.Question, s *session.Session) string {
	if len(qs) == 0 {
		return theme.Hint.Render("当前没有错题，继续保持。")
	}
	cards := make([]string, 0, len(qs))
	for _, q := range qs {
		rec, _ := s.Record(q.ID)
		lines := []string{
			badges(q.ID, q.Type.Label()),
			q.Stem,
			row("你的答案", theme.Incorrect.Render(grading.AnswerText(q, rec.UserLetters))),
			row("正确答案", theme.Correct.Render(grading.AnswerText(q, s.Key.Letters(q.ID)))),
			theme.Hint.Render("去订正: studydesk quiz " + q.ID + "   回看知识点: studydesk knowledge --tag " + q.PrimaryTag(fallbackTag)),
		}
		cards = append(cards, theme.Card.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(cards, "\n")
}

// Overview renders corpus totals and per-source and per-type counts.
func Overview(c *corpus.Corpus) string {
	title := c.Meta.Title
	if title == "" {
		title = "studydesk"
	}
	lines := []string{
		theme.Title.Render(title),
		row("知识点库", fmt.Sprintf("%d 条结构化知识", c.Meta.KnowledgeCount)),
		row("题目总量", fmt.Sprintf("%d 道，含客观题与主观题", c.Meta.QuestionCount)),
		"",
	}
	for _, cnt := range c.CountBySource() {
		lines = append(lines, row(cnt.Name, fmt.Sprintf("题目 %d 道", cnt.Count)))
	}
	lines = append(lines, "")
	for _, cnt := range c.CountByType() {
		lines = append(lines, row(corpus.QuestionType(cnt.Name).Label(), fmt.Sprintf("题目 %d 道", cnt.Count)))
	}
	return theme.Card.Render(strings.Join(lines, "\n"))
}

// Documents renders the document library.
func Documents(docs []corpus.Document) string {
	if len(docs) == 0 {
		return theme.Hint.Render("没有匹配的文档。")
	}
	cards := make([]string, 0, len(docs))
	for _, d := range docs {
		lines := []string{theme.Title.Render(d.Title)}
		if d.Desc != "" {
			lines = append(lines, d.Desc)
		}
		lines = append(lines, theme.Hint.Render(d.PreviewPath()))
		cards = append(cards, theme.Card.Render(strings.Join(lines, "\n")))
	}
	return strings.Join(cards, "\n")
}
