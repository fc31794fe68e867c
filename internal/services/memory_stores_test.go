package services

import (
	"database/sql"
	"io"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/biyonik/groupbuy-api/internal/models"
	"github.com/biyonik/groupbuy-api/pkg/queue"
)

// -----------------------------------------------------------------------------
// In-memory store implementasyonları. Servis testleri MySQL'e ihtiyaç duymadan
// bu store'lar üzerinde çalışır. UpdateCAS, repository'deki version koşullu
// UPDATE ile aynı semantiği verir.
// -----------------------------------------------------------------------------

type memCampaignStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.Campaign
}

func newMemCampaignStore() *memCampaignStore {
	return &memCampaignStore{items: make(map[int64]*models.Campaign)}
}

func (s *memCampaignStore) FindByID(id int64) (*models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.items[id]
	if !ok || c.DeletedAt != nil {
		return nil, sql.ErrNoRows
	}
	clone := *c
	return &clone, nil
}

func (s *memCampaignStore) UpdateCAS(campaign *models.Campaign) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.items[campaign.ID]
	if !ok {
		return false, nil
	}
	if current.Version != campaign.Version {
		return false, nil
	}

	clone := *campaign
	clone.Version++
	s.items[campaign.ID] = &clone
	campaign.Version = clone.Version
	return true, nil
}

func (s *memCampaignStore) Create(campaign *models.Campaign) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	campaign.ID = s.nextID
	if campaign.Version == 0 {
		campaign.Version = 1
	}
	clone := *campaign
	s.items[campaign.ID] = &clone
	return campaign.ID, nil
}

func (s *memCampaignStore) Update(campaign *models.Campaign) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *campaign
	s.items[campaign.ID] = &clone
	return nil
}

func (s *memCampaignStore) SoftDelete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.items[id]; ok {
		now := time.Now()
		c.DeletedAt = &now
	}
	return nil
}

func (s *memCampaignStore) GetAll(filter models.CampaignFilter) ([]models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Campaign
	for _, c := range s.items {
		if c.DeletedAt != nil {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.Category != "" && c.Category != filter.Category {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(c.Title), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memCampaignStore) CountAll(filter models.CampaignFilter) (int, error) {
	all, err := s.GetAll(filter)
	if err != nil {
		return 0, err
	}
	return len(all), nil
}

func (s *memCampaignStore) GetByCreator(creatorID int64) ([]models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Campaign
	for _, c := range s.items {
		if c.DeletedAt == nil && c.CreatorID == creatorID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (s *memCampaignStore) GetExpiredUnresolved(limit int) ([]models.Campaign, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	var out []models.Campaign
	for _, c := range s.items {
		if c.DeletedAt == nil && c.Status == models.CampaignStatusActive && now.After(c.Deadline) {
			out = append(out, *c)
			if len(out) == limit {
				break
			}
		}
	}
	return out, nil
}

type memParticipationStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.Participation
}

func newMemParticipationStore() *memParticipationStore {
	return &memParticipationStore{items: make(map[int64]*models.Participation)}
}

func (s *memParticipationStore) FindByID(id int64) (*models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (s *memParticipationStore) FindByUserAndCampaign(userID, campaignID int64) (*models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var latest *models.Participation
	for _, p := range s.items {
		if p.UserID == userID && p.CampaignID == campaignID {
			if latest == nil || p.ID > latest.ID {
				latest = p
			}
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	clone := *latest
	return &clone, nil
}

func (s *memParticipationStore) GetByUserAndCampaign(userID, campaignID int64) ([]models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Participation
	for _, p := range s.items {
		if p.UserID == userID && p.CampaignID == campaignID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memParticipationStore) GetByCampaign(campaignID int64) ([]models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Participation
	for _, p := range s.items {
		if p.CampaignID == campaignID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memParticipationStore) GetActiveByCampaign(campaignID int64) ([]models.Participation, error) {
	all, err := s.GetByCampaign(campaignID)
	if err != nil {
		return nil, err
	}
	var out []models.Participation
	for _, p := range all {
		if p.Status == models.ParticipationStatusActive {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memParticipationStore) GetByUser(userID int64) ([]models.Participation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Participation
	for _, p := range s.items {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memParticipationStore) Create(p *models.Participation) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID
	clone := *p
	s.items[p.ID] = &clone
	return p.ID, nil
}

func (s *memParticipationStore) Update(p *models.Participation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *p
	s.items[p.ID] = &clone
	return nil
}

type memPaymentStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.Payment
}

func newMemPaymentStore() *memPaymentStore {
	return &memPaymentStore{items: make(map[int64]*models.Payment)}
}

func (s *memPaymentStore) FindByID(id int64) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *p
	return &clone, nil
}

func (s *memPaymentStore) GetAll(page, perPage int) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.Payment
	for _, p := range s.items {
		all = append(all, *p)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID > all[j].ID })

	start := (page - 1) * perPage
	if start >= len(all) {
		return nil, nil
	}
	end := start + perPage
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], nil
}

func (s *memPaymentStore) GetByUser(userID int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Payment
	for _, p := range s.items {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memPaymentStore) GetByCampaign(campaignID int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Payment
	for _, p := range s.items {
		if p.CampaignID == campaignID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memPaymentStore) GetByParticipation(participationID int64) ([]models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.Payment
	for _, p := range s.items {
		if p.ParticipationID == participationID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memPaymentStore) Create(p *models.Payment) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	p.ID = s.nextID
	clone := *p
	s.items[p.ID] = &clone
	return p.ID, nil
}

func (s *memPaymentStore) Update(p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *p
	s.items[p.ID] = &clone
	return nil
}

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	items  map[int64]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{items: make(map[int64]*models.User)}
}

func (s *memUserStore) FindByID(id int64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	clone := *u
	return &clone, nil
}

func (s *memUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.items {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *memUserStore) GetAll(page, perPage int) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.User
	for _, u := range s.items {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	start := (page - 1) * perPage
	if start >= len(out) {
		return nil, nil
	}
	end := start + perPage
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (s *memUserStore) Create(u *models.User) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	u.ID = s.nextID
	clone := *u
	s.items[u.ID] = &clone
	return u.ID, nil
}

func (s *memUserStore) Update(u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *u
	s.items[u.ID] = &clone
	return nil
}

// recordingQueue, push edilen job'ları kaydeden test kuyruğudur.
type recordingQueue struct {
	mu   sync.Mutex
	jobs []queue.Job
}

func newRecordingQueue() *recordingQueue {
	return &recordingQueue{}
}

func (q *recordingQueue) Push(job queue.Job, queueName string) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *recordingQueue) Later(delay time.Duration, job queue.Job, queueName string) error {
	return q.Push(job, queueName)
}

func (q *recordingQueue) Pop(queueName string) (queue.Job, error) { return nil, nil }

func (q *recordingQueue) Delete(queueName string, job queue.Job) error { return nil }

func (q *recordingQueue) Release(queueName string, job queue.Job, delay time.Duration) error {
	return nil
}

func (q *recordingQueue) Size(queueName string) (int64, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return int64(len(q.jobs)), nil
}

func (q *recordingQueue) PushedJobs() []queue.Job {
	q.mu.Lock()
	defer q.mu.Unlock()
	return append([]queue.Job{}, q.jobs...)
}

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}
