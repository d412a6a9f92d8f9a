package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/go-cmp/cmp"

	"newsdesk/internal/domain/entity"
	pg "newsdesk/internal/infra/adapter/persistence/postgres"
	"newsdesk/internal/repository"
)

var articleColumns = []string{
	"id", "title", "summary", "content", "cover_image_url",
	"author_id", "category_id", "views", "published_date",
	"created_at", "updated_at", "author_name", "category_name", "tags",
}

func articleRow(a *entity.Article, authorName, categoryName, tags string) *sqlmock.Rows {
	return sqlmock.NewRows(articleColumns).AddRow(
		a.ID, a.Title, a.Summary, a.Content, a.CoverImageURL,
		a.AuthorID, a.CategoryID, a.Views, a.PublishedDate,
		a.CreatedAt, a.UpdatedAt, authorName, categoryName, tags,
	)
}

func testArticle(now time.Time) *entity.Article {
	return &entity.Article{
		ID:            "9f3b2a10-1111-4222-8333-444455556666",
		Title:         "Cup final preview",
		Summary:       "Who takes the trophy",
		Content:       "Full preview ahead of the final.",
		CoverImageURL: "https://cdn.example.com/final.jpg",
		AuthorID:      "a1b2c3d4-0000-4000-8000-000000000001",
		CategoryID:    "a1b2c3d4-0000-4000-8000-000000000002",
		Views:         42,
		PublishedDate: now,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func TestArticleRepo_Get(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	art := testArticle(now)

	mock.ExpectQuery("WHERE a.id = \\$1 AND a.deleted_at IS NULL").
		WithArgs(art.ID).
		WillReturnRows(articleRow(art, "jsmith", "Premier League", "{transfers,derby}"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), art.ID)
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}

	want := &repository.ArticleWithMeta{
		Article:      art,
		AuthorName:   "jsmith",
		CategoryName: "Premier League",
		Tags:         []string{"transfers", "derby"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("mismatch (-want +got):\n%s", diff)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Get_NotFound(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectQuery("WHERE a.id = \\$1").
		WillReturnRows(sqlmock.NewRows(articleColumns))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Get(context.Background(), "9f3b2a10-1111-4222-8333-444455556666")
	if err != nil {
		t.Fatalf("Get err=%v", err)
	}
	if got != nil {
		t.Fatalf("expected nil for missing article, got %+v", got)
	}
}

func TestArticleRepo_List_BindsFiltersAndPagination(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	mock.ExpectQuery("ILIKE \\$1").
		WithArgs("%derby%", 10, 20).
		WillReturnRows(articleRow(testArticle(now), "jsmith", "Premier League", "{derby}"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.List(context.Background(), repository.ArticleQuery{
		Filters:   repository.ArticleFilters{Search: "derby"},
		SortBy:    repository.SortByPublishedDate,
		SortOrder: repository.SortDesc,
		Limit:     10,
		Offset:    20,
	})
	if err != nil || len(got) != 1 {
		t.Fatalf("List err=%v len=%d", err, len(got))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_List_RejectsUnknownSortField(t *testing.T) {
	db, _, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	repo := pg.NewArticleRepo(db)
	_, err := repo.List(context.Background(), repository.ArticleQuery{
		SortBy: repository.SortField("views; DROP TABLE articles"),
		Limit:  10,
	})
	if !errors.Is(err, repository.ErrUnknownSortField) {
		t.Fatalf("err=%v, want ErrUnknownSortField", err)
	}
}

func TestArticleRepo_Count_SharesFilterBindings(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	// Count binds exactly the filter args, without LIMIT/OFFSET.
	mock.ExpectQuery("SELECT COUNT\\(DISTINCT a.id\\)").
		WithArgs("%derby%", "premier-league").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	repo := pg.NewArticleRepo(db)
	got, err := repo.Count(context.Background(), repository.ArticleFilters{
		Search:   "derby",
		Category: "premier-league",
	})
	if err != nil {
		t.Fatalf("Count err=%v", err)
	}
	if got != 7 {
		t.Fatalf("count=%d want 7", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Create_InsertsArticleAndTagsInOneTx(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	art := testArticle(now)
	const newID = "11111111-2222-4333-8444-555566667777"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WithArgs(art.Title, art.Summary, art.Content, art.CoverImageURL,
			art.AuthorID, art.CategoryID, art.PublishedDate).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(newID))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_tags")).
		WithArgs(newID, "transfers").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_tags")).
		WithArgs(newID, "derby").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	id, err := repo.Create(context.Background(), art, []string{"transfers", "derby"})
	if err != nil {
		t.Fatalf("Create err=%v", err)
	}
	if id != newID {
		t.Fatalf("id=%q want %q", id, newID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Create_TagFailureRollsBackArticle(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	art := testArticle(now)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO articles")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("11111111-2222-4333-8444-555566667777"))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_tags")).
		WillReturnError(errors.New("tag constraint violation"))
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	_, err := repo.Create(context.Background(), art, []string{"transfers"})
	if err == nil {
		t.Fatal("expected error")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_FieldsAndTagReplacement(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	const id = "9f3b2a10-1111-4222-8333-444455556666"
	title := "New title"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE articles").
		WithArgs(title, id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM article_tags")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO article_tags")).
		WithArgs(id, "injuries").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	ok, err := repo.Update(context.Background(), id, repository.ArticleUpdate{
		Title:       &title,
		Tags:        []string{"injuries"},
		ReplaceTags: true,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if !ok {
		t.Fatal("expected ok")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_MissingRowReportsFalseWithoutTagWrites(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	title := "New title"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE articles").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	repo := pg.NewArticleRepo(db)
	ok, err := repo.Update(context.Background(), "9f3b2a10-1111-4222-8333-444455556666", repository.ArticleUpdate{
		Title:       &title,
		Tags:        []string{"injuries"},
		ReplaceTags: true,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if ok {
		t.Fatal("expected not found")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_Update_TagOnlyProbesForLiveRow(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	const id = "9f3b2a10-1111-4222-8333-444455556666"

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM article_tags")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	ok, err := repo.Update(context.Background(), id, repository.ArticleUpdate{
		Tags:        nil,
		ReplaceTags: true,
	})
	if err != nil {
		t.Fatalf("Update err=%v", err)
	}
	if !ok {
		t.Fatal("expected ok")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_SoftDelete_CascadesToComments(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	const id = "9f3b2a10-1111-4222-8333-444455556666"

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE comments SET deleted_at").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE articles SET deleted_at").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	ok, err := repo.SoftDelete(context.Background(), id)
	if err != nil {
		t.Fatalf("SoftDelete err=%v", err)
	}
	if !ok {
		t.Fatal("expected ok")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_SoftDelete_AlreadyDeleted(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE comments SET deleted_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("UPDATE articles SET deleted_at").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	repo := pg.NewArticleRepo(db)
	ok, err := repo.SoftDelete(context.Background(), "9f3b2a10-1111-4222-8333-444455556666")
	if err != nil {
		t.Fatalf("SoftDelete err=%v", err)
	}
	if ok {
		t.Fatal("expected false for already-deleted article")
	}
}

func TestArticleRepo_IncrementViews(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	const id = "9f3b2a10-1111-4222-8333-444455556666"
	mock.ExpectExec("UPDATE articles SET views = views \\+ 1").
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	repo := pg.NewArticleRepo(db)
	if err := repo.IncrementViews(context.Background(), id); err != nil {
		t.Fatalf("IncrementViews err=%v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestArticleRepo_PublishedSince(t *testing.T) {
	db, mock, _ := sqlmock.New()
	defer func() { _ = db.Close() }()

	now := time.Now()
	since := now.AddDate(0, 0, -7)
	mock.ExpectQuery("a.published_date >= \\$1").
		WithArgs(since).
		WillReturnRows(articleRow(testArticle(now), "jsmith", "Premier League", "{derby}"))

	repo := pg.NewArticleRepo(db)
	got, err := repo.PublishedSince(context.Background(), since)
	if err != nil || len(got) != 1 {
		t.Fatalf("PublishedSince err=%v len=%d", err, len(got))
	}
}
