package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/brianvoe/gofakeit/v6"
)

var base = flag.String("base", "http://localhost:8080", "eco3 API base URL")

type account struct {
	token string
	id    uint
}

func main() {
	flag.Parse()
	gofakeit.Seed(time.Now().UnixNano())

	users := make([]account, 0, 5)
	for i := 0; i < 5; i++ {
		acc, err := register()
		if err != nil {
			log.Fatalf("register: %v", err)
		}
		users = append(users, acc)
	}

	postIDs := make([]uint, 0, 15)
	for _, u := range users {
		for i := 0; i < 3; i++ {
			id, err := createPost(u.token)
			if err != nil {
				log.Printf("create post: %v", err)
				continue
			}
			postIDs = append(postIDs, id)
		}
	}

	for _, u := range users {
		for _, pid := range postIDs {
			if gofakeit.Bool() {
				likePost(u.token, pid)
			}
			if gofakeit.Number(0, 3) == 0 {
				commentPost(u.token, pid)
			}
		}
	}

	log.Printf("seeded %d users, %d posts", len(users), len(postIDs))
}

func register() (account, error) {
	payload := map[string]string{
		"username":      gofakeit.Username(),
		"email":         gofakeit.Email(),
		"password_hash": gofakeit.Password(true, true, true, false, false, 12),
	}
	data, _ := json.Marshal(payload)
	resp, err := http.Post(*base+"/api/auth/register", "application/json", bytes.NewBuffer(data))
	if err != nil {
		return account{}, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		return account{}, fmt.Errorf("status %s", resp.Status)
	}
	var out struct {
		User struct {
			ID uint `json:"id"`
		} `json:"user"`
		AuthToken string `json:"auth_token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return account{}, err
	}
	log.Printf("registered %s (id=%d)", payload["username"], out.User.ID)
	return account{token: out.AuthToken, id: out.User.ID}, nil
}

func createPost(token string) (uint, error) {
	payload := map[string]string{
		"title":   gofakeit.Sentence(5),
		"content": gofakeit.Paragraph(1, 3, 10, " "),
	}
	var out struct {
		ID uint `json:"id"`
	}
	if err := doJSON("POST", "/api/posts", token, payload, &out); err != nil {
		return 0, err
	}
	return out.ID, nil
}

func likePost(token string, postID uint) {
	if err := doJSON("POST", "/api/likes", token, map[string]uint{"post_id": postID}, nil); err != nil {
		log.Printf("like post %d: %v", postID, err)
	}
}

func commentPost(token string, postID uint) {
	payload := map[string]any{
		"post_id": postID,
		"content": gofakeit.Sentence(8),
	}
	if err := doJSON("POST", "/api/comments", token, payload, nil); err != nil {
		log.Printf("comment post %d: %v", postID, err)
	}
}

func doJSON(method, path, token string, in, out any) error {
	data, _ := json.Marshal(in)
	req, err := http.NewRequest(method, *base+path, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("status %s", resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
