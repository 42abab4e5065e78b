// Package stats holds pure aggregate helpers over already-loaded blogs.
package stats

import "github.com/nvalente/bloglist-be/internal/models"

// AuthorBlogs pairs an author with how many blogs they wrote.
type AuthorBlogs struct {
	Author string `json:"author"`
	Blogs  int    `json:"blogs"`
}

// AuthorLikes pairs an author with their accumulated likes.
type AuthorLikes struct {
	Author string `json:"author"`
	Likes  int    `json:"likes"`
}

// TotalLikes sums the likes of all blogs.
func TotalLikes(blogs []models.Blog) int {
	total := 0
	for _, b := range blogs {
		total += b.Likes
	}
	return total
}

// FavoriteBlog returns the blog with the most likes, or nil for an empty
// list. Ties keep the earlier blog.
func FavoriteBlog(blogs []models.Blog) *models.Blog {
	var favorite *models.Blog
	for i := range blogs {
		if favorite == nil || blogs[i].Likes > favorite.Likes {
			favorite = &blogs[i]
		}
	}
	return favorite
}

// MostBlogs returns the author with the largest number of blogs, or nil for
// an empty list.
func MostBlogs(blogs []models.Blog) *AuthorBlogs {
	counts := map[string]int{}
	var top *AuthorBlogs
	for _, b := range blogs {
		counts[b.Author]++
		if top == nil || counts[b.Author] > top.Blogs {
			top = &AuthorBlogs{Author: b.Author, Blogs: counts[b.Author]}
		}
	}
	return top
}

// MostLikes returns the author whose blogs accumulated the most likes, or
// nil for an empty list.
func MostLikes(blogs []models.Blog) *AuthorLikes {
	likes := map[string]int{}
	var top *AuthorLikes
	for _, b := range blogs {
		likes[b.Author] += b.Likes
		if top == nil || likes[b.Author] > top.Likes {
			top = &AuthorLikes{Author: b.Author, Likes: likes[b.Author]}
		}
	}
	return top
}
