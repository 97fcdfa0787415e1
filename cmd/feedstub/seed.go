package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ytget/scrolly/internal/model"
)

// Seed is the YAML document pre-loaded with --seed.
//
//	users:
//	  - name: Ana
//	    email: ana@example.com
//	    password: secret
//	posts:
//	  - author: ana@example.com
//	    text: hello
//	    age: 2h
//	    likes: [ana@example.com]
//	    comments:
//	      - author: ana@example.com
//	        text: first
type Seed struct {
	Users []SeedUser `yaml:"users"`
	Posts []SeedPost `yaml:"posts"`
}

// SeedUser is an account created before the server starts
type SeedUser struct {
	Name       string `yaml:"name"`
	Email      string `yaml:"email"`
	Password   string `yaml:"password"`
	ProfilePic string `yaml:"profilePic"`
}

// SeedPost is a post attributed to a seeded user by email. Age dates the
// post relative to load time.
type SeedPost struct {
	Author   string        `yaml:"author"`
	Text     string        `yaml:"text"`
	Image    string        `yaml:"image"`
	Age      time.Duration `yaml:"age"`
	Likes    []string      `yaml:"likes"`
	Comments []SeedComment `yaml:"comments"`
}

// SeedComment is a comment on a seeded post
type SeedComment struct {
	Author string `yaml:"author"`
	Text   string `yaml:"text"`
}

// LoadSeed reads a seed file
func LoadSeed(path string) (*Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed: %w", err)
	}
	return ParseSeed(data)
}

// ParseSeed decodes a seed document
func ParseSeed(data []byte) (*Seed, error) {
	var seed Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &seed, nil
}

// ApplySeed registers the seed's users and adds its posts. Posts and
// comments must reference seeded or already registered emails.
func (s *Server) ApplySeed(seed *Seed) error {
	for _, u := range seed.Users {
		_, err := s.register(model.RegisterRequest{
			Name:       u.Name,
			Email:      u.Email,
			Password:   u.Password,
			ProfilePic: u.ProfilePic,
		})
		if err != nil {
			return fmt.Errorf("seed user %q: %w", u.Email, err)
		}
	}

	now := s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()

	lookup := func(email string) (model.ID, error) {
		id, ok := s.byEmail[strings.ToLower(strings.TrimSpace(email))]
		if !ok {
			return "", fmt.Errorf("unknown user %q", email)
		}
		return id, nil
	}

	for i, p := range seed.Posts {
		authorID, err := lookup(p.Author)
		if err != nil {
			return fmt.Errorf("seed post %d: %w", i, err)
		}
		created := now.Add(-p.Age)
		post := &model.Post{
			ID:        newID(),
			Text:      p.Text,
			Image:     p.Image,
			Author:    s.authorLocked(authorID),
			Likes:     []model.ID{},
			Comments:  []model.Comment{},
			CreatedAt: created,
		}
		for _, email := range p.Likes {
			id, err := lookup(email)
			if err != nil {
				return fmt.Errorf("seed post %d like: %w", i, err)
			}
			if !post.LikedBy(id) {
				post.Likes = append(post.Likes, id)
			}
		}
		for j, c := range p.Comments {
			id, err := lookup(c.Author)
			if err != nil {
				return fmt.Errorf("seed post %d comment %d: %w", i, j, err)
			}
			post.Comments = append(post.Comments, model.Comment{
				ID:        newID(),
				Text:      c.Text,
				Author:    s.authorLocked(id),
				CreatedAt: created.Add(time.Duration(j+1) * time.Minute),
			})
		}
		s.posts = append(s.posts, post)
	}
	return nil
}
