package subscription

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"log/slog"
	"sync/atomic"
	"time"

	"newsdesk/internal/infra/mailer"
	"newsdesk/internal/observability/metrics"
	"newsdesk/internal/repository"

	"golang.org/x/sync/errgroup"
)

// sendBatchSize is how many subscribers are mailed concurrently per batch.
const sendBatchSize = 50

const digestTemplate = `<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #1a65b7;">Latest Football News Articles</h2>
  <p>Hello football fan!</p>
  <p>We're excited to share our latest articles with you. Check out what's new in the football world:</p>
  <ul style="padding-left: 20px;">
    {{range .Articles}}<li style="margin-bottom: 10px;">
      <a href="{{$.BaseURL}}/articles/{{.ID}}" style="color: #1a65b7; font-weight: bold; text-decoration: none;">{{.Title}}</a> - {{.Excerpt}}
    </li>
    {{end}}
  </ul>
  <div style="margin-top: 30px; padding-top: 20px; border-top: 1px solid #eee;">
    <p>Stay up-to-date with the latest football news and stories.</p>
    <p>
      <a href="{{.BaseURL}}" style="color: #1a65b7;">Visit our website</a> |
      <a href="{{.BaseURL}}/unsubscribe" style="color: #666;">Unsubscribe</a>
    </p>
  </div>
</div>`

type digestArticle struct {
	ID      string
	Title   string
	Excerpt string
}

type digestData struct {
	BaseURL  string
	Articles []digestArticle
}

// Newsletter assembles a digest of recently published articles and delivers
// it to every active subscriber.
type Newsletter struct {
	Subscriptions repository.SubscriptionRepository
	Articles      repository.ArticleRepository
	Mailer        mailer.Mailer
	Logger        *slog.Logger

	// BaseURL is the public site root linked from the digest.
	BaseURL string

	tmpl *template.Template
}

// NewNewsletter creates a newsletter sender. It panics if the embedded
// digest template fails to parse, which can only happen at build time.
func NewNewsletter(subs repository.SubscriptionRepository, articles repository.ArticleRepository, m mailer.Mailer, logger *slog.Logger, baseURL string) *Newsletter {
	return &Newsletter{
		Subscriptions: subs,
		Articles:      articles,
		Mailer:        m,
		Logger:        logger,
		BaseURL:       baseURL,
		tmpl:          template.Must(template.New("digest").Parse(digestTemplate)),
	}
}

func (n *Newsletter) logger() *slog.Logger {
	if n.Logger != nil {
		return n.Logger
	}
	return slog.Default()
}

// Send delivers the digest of articles published within the last `days`
// days to all active subscribers, in batches of 50 concurrent sends.
// A failed send is logged and skipped rather than aborting the run.
// It returns the number of emails successfully delivered.
func (n *Newsletter) Send(ctx context.Context, days int, subject string) (int, error) {
	if days <= 0 {
		days = 7
	}

	subscribers, err := n.Subscriptions.ActiveSubscribers(ctx)
	if err != nil {
		return 0, fmt.Errorf("newsletter: %w", err)
	}
	if len(subscribers) == 0 {
		return 0, nil
	}

	since := time.Now().AddDate(0, 0, -days)
	articles, err := n.Articles.PublishedSince(ctx, since)
	if err != nil {
		return 0, fmt.Errorf("newsletter: %w", err)
	}
	if len(articles) == 0 {
		return 0, nil
	}

	body, err := n.render(articles)
	if err != nil {
		return 0, fmt.Errorf("newsletter: %w", err)
	}
	if subject == "" {
		subject = fmt.Sprintf("Football News: %d New Articles This Week", len(articles))
	}

	var sent atomic.Int64
	for start := 0; start < len(subscribers); start += sendBatchSize {
		end := start + sendBatchSize
		if end > len(subscribers) {
			end = len(subscribers)
		}

		g, gctx := errgroup.WithContext(ctx)
		for _, sub := range subscribers[start:end] {
			g.Go(func() error {
				if err := n.Mailer.Send(gctx, sub.Email, subject, body); err != nil {
					metrics.RecordNewsletterSend(false)
					n.logger().Warn("newsletter send failed",
						slog.String("user_id", sub.UserID),
						slog.String("error", err.Error()))
					return nil
				}
				metrics.RecordNewsletterSend(true)
				sent.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return int(sent.Load()), fmt.Errorf("newsletter: %w", err)
		}
	}

	n.logger().Info("newsletter delivered",
		slog.Int("subscribers", len(subscribers)),
		slog.Int("articles", len(articles)),
		slog.Int64("sent", sent.Load()))
	return int(sent.Load()), nil
}

func (n *Newsletter) render(articles []repository.ArticleWithMeta) (string, error) {
	data := digestData{BaseURL: n.BaseURL}
	for _, a := range articles {
		excerpt := a.Article.Summary
		if len(excerpt) > 120 {
			excerpt = excerpt[:120] + "..."
		}
		data.Articles = append(data.Articles, digestArticle{
			ID:      a.Article.ID,
			Title:   a.Article.Title,
			Excerpt: excerpt,
		})
	}

	var buf bytes.Buffer
	if err := n.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render digest: %w", err)
	}
	return buf.String(), nil
}
