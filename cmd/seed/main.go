package main

import (
	"flag"
	"log"

	"github.com/ManuelReschke/Yatube/app/repository"
	"github.com/ManuelReschke/Yatube/internal/pkg/database"
	"github.com/ManuelReschke/Yatube/internal/pkg/env"
	"github.com/ManuelReschke/Yatube/internal/pkg/seed"
)

func main() {
	opts := seed.DefaultOptions()
	flag.IntVar(&opts.Users, "users", opts.Users, "number of users")
	flag.IntVar(&opts.Groups, "groups", opts.Groups, "number of groups")
	flag.IntVar(&opts.PostsPerUser, "posts", opts.PostsPerUser, "posts per user")
	flag.IntVar(&opts.CommentsPerPost, "comments", opts.CommentsPerPost, "comments per post")
	flag.StringVar(&opts.Password, "password", opts.Password, "password for every generated user")
	flag.Int64Var(&opts.Seed, "seed", 0, "random seed, 0 for a random data set")
	flag.Parse()

	env.SetupEnvFile()
	database.SetupDatabase()

	if _, err := seed.New(repository.NewRepositories(database.GetDB()), opts).Run(); err != nil {
		log.Fatalf("seed: %v", err)
	}
}
