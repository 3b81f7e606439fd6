// MoodReel - Mood-Aware Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/moodreel

package recommend

import "github.com/tomtom215/moodreel/internal/models"

// catalog is the bundled offline list served when the live pipeline yields
// nothing. Every supported genre has at least one entry; Science Fiction
// has enough to fill a genre-pure fallback batch. Order matters: it is the
// tie-break order after scoring and the order used to pad short genres.
var catalog = []models.MovieRecommendation{
	{
		ID: "1", Title: "Blade Runner 2049", Genre: "Science Fiction", Year: 2017, Rating: 8.0,
		Description: "A young blade runner unearths a buried secret that leads him to a former blade runner missing for thirty years.",
		PosterURL:   "/blade-runner-2049.jpg", Director: "Denis Villeneuve",
		Cast: []string{"Ryan Gosling", "Harrison Ford", "Ana de Armas"},
	},
	{
		ID: "2", Title: "The Grand Budapest Hotel", Genre: "Comedy", Year: 2014, Rating: 8.1,
		Description: "A legendary concierge and his lobby boy are swept up in the theft of a priceless painting.",
		PosterURL:   "/grand-budapest-hotel.jpg", Director: "Wes Anderson",
		Cast: []string{"Ralph Fiennes", "F. Murray Abraham", "Mathieu Amalric"},
	},
	{
		ID: "3", Title: "Mad Max: Fury Road", Genre: "Action", Year: 2015, Rating: 8.1,
		Description: "A drifter and a rebel warrior flee across the wasteland from a tyrant and his war party.",
		PosterURL:   "/mad-max-fury-road.jpg", Director: "George Miller",
		Cast: []string{"Tom Hardy", "Charlize Theron", "Nicholas Hoult"},
	},
	{
		ID: "4", Title: "Her", Genre: "Romance", Year: 2013, Rating: 8.0,
		Description: "A lonely writer falls for the operating system he bought to organize his life.",
		PosterURL:   "/her.jpg", Director: "Spike Jonze",
		Cast: []string{"Joaquin Phoenix", "Scarlett Johansson", "Amy Adams"},
	},
	{
		ID: "5", Title: "Get Out", Genre: "Horror", Year: 2017, Rating: 7.8,
		Description: "A weekend visit to his girlfriend's family estate turns into a nightmare for a young photographer.",
		PosterURL:   "/get-out.jpg", Director: "Jordan Peele",
		Cast: []string{"Daniel Kaluuya", "Allison Williams", "Bradley Whitford"},
	},
	{
		ID: "6", Title: "Moonlight", Genre: "Drama", Year: 2016, Rating: 7.4,
		Description: "Three chapters in the life of a young man growing up in Miami.",
		PosterURL:   "/moonlight.jpg", Director: "Barry Jenkins",
		Cast: []string{"Mahershala Ali", "Naomie Harris", "Trevante Rhodes"},
	},
	{
		ID: "7", Title: "Spider-Man: Into the Spider-Verse", Genre: "Animation", Year: 2018, Rating: 8.4,
		Description: "Brooklyn teen Miles Morales meets Spider-People from other dimensions.",
		PosterURL:   "/spider-verse.jpg", Director: "Bob Persichetti",
		Cast: []string{"Shameik Moore", "Jake Johnson", "Hailee Steinfeld"},
	},
	{
		ID: "8", Title: "Knives Out", Genre: "Mystery", Year: 2019, Rating: 7.9,
		Description: "A detective untangles a wealthy family's lies after the patriarch dies on his birthday.",
		PosterURL:   "/knives-out.jpg", Director: "Rian Johnson",
		Cast: []string{"Daniel Craig", "Chris Evans", "Ana de Armas"},
	},
	{
		ID: "9", Title: "1917", Genre: "War", Year: 2019, Rating: 8.2,
		Description: "Two soldiers race across enemy territory to deliver a message that could save 1,600 men.",
		PosterURL:   "/1917.jpg", Director: "Sam Mendes",
		Cast: []string{"George MacKay", "Dean-Charles Chapman", "Mark Strong"},
	},
	{
		ID: "10", Title: "The Shape of Water", Genre: "Fantasy", Year: 2017, Rating: 7.3,
		Description: "A mute cleaner at a secret laboratory forms a bond with the captive creature held there.",
		PosterURL:   "/shape-of-water.jpg", Director: "Guillermo del Toro",
		Cast: []string{"Sally Hawkins", "Octavia Spencer", "Michael Shannon"},
	},
	{
		ID: "11", Title: "John Wick", Genre: "Action", Year: 2014, Rating: 7.4,
		Description: "A retired hitman returns to the underworld to settle a very personal score.",
		PosterURL:   "/john-wick.jpg", Director: "Chad Stahelski",
		Cast: []string{"Keanu Reeves", "Michael Nyqvist", "Alfie Allen"},
	},
	{
		ID: "12", Title: "Lady Bird", Genre: "Comedy", Year: 2017, Rating: 7.4,
		Description: "A headstrong Sacramento teenager spends her senior year pushing against her mother.",
		PosterURL:   "/lady-bird.jpg", Director: "Greta Gerwig",
		Cast: []string{"Saoirse Ronan", "Laurie Metcalf", "Tracy Letts"},
	},
	{
		ID: "13", Title: "Hereditary", Genre: "Horror", Year: 2018, Rating: 7.3,
		Description: "After the family matriarch dies, her daughter's household begins to unravel.",
		PosterURL:   "/hereditary.jpg", Director: "Ari Aster",
		Cast: []string{"Toni Collette", "Alex Wolff", "Milly Shapiro"},
	},
	{
		ID: "14", Title: "Call Me by Your Name", Genre: "Romance", Year: 2017, Rating: 7.9,
		Description: "One Italian summer, a seventeen-year-old falls for the student staying with his family.",
		PosterURL:   "/call-me-by-your-name.jpg", Director: "Luca Guadagnino",
		Cast: []string{"Timothée Chalamet", "Armie Hammer", "Michael Stuhlbarg"},
	},
	{
		ID: "15", Title: "Parasite", Genre: "Thriller", Year: 2019, Rating: 8.5,
		Description: "A struggling family schemes its way into the household of a wealthy one.",
		PosterURL:   "/parasite.jpg", Director: "Bong Joon-ho",
		Cast: []string{"Song Kang-ho", "Lee Sun-kyun", "Cho Yeo-jeong"},
	},
	{
		ID: "16", Title: "Arrival", Genre: "Science Fiction", Year: 2016, Rating: 7.6,
		Description: "A linguist races to understand the language of visitors who have landed around the world.",
		Director:    "Denis Villeneuve",
		Cast:        []string{"Amy Adams", "Jeremy Renner", "Forest Whitaker"},
	},
	{
		ID: "17", Title: "Interstellar", Genre: "Science Fiction", Year: 2014, Rating: 8.4,
		Description: "Explorers travel through a wormhole in search of a new home for humanity.",
		Director:    "Christopher Nolan",
		Cast:        []string{"Matthew McConaughey", "Anne Hathaway", "Jessica Chastain"},
	},
	{
		ID: "18", Title: "Ex Machina", Genre: "Science Fiction", Year: 2014, Rating: 7.6,
		Description: "A programmer is invited to judge whether a humanoid robot is truly conscious.",
		Director:    "Alex Garland",
		Cast:        []string{"Domhnall Gleeson", "Alicia Vikander", "Oscar Isaac"},
	},
	{
		ID: "19", Title: "Dune", Genre: "Science Fiction", Year: 2021, Rating: 7.8,
		Description: "A noble heir is drawn into a war over the most valuable resource in the universe.",
		Director:    "Denis Villeneuve",
		Cast:        []string{"Timothée Chalamet", "Rebecca Ferguson", "Oscar Isaac"},
	},
	{
		ID: "20", Title: "Inception", Genre: "Science Fiction", Year: 2010, Rating: 8.4,
		Description: "A thief who steals secrets from dreams is asked to plant an idea instead.",
		Director:    "Christopher Nolan",
		Cast:        []string{"Leonardo DiCaprio", "Joseph Gordon-Levitt", "Elliot Page"},
	},
	{
		ID: "21", Title: "The Lord of the Rings: The Fellowship of the Ring", Genre: "Adventure", Year: 2001, Rating: 8.4,
		Description: "A hobbit sets out with eight companions to destroy a ring of terrible power.",
		Director:    "Peter Jackson",
		Cast:        []string{"Elijah Wood", "Ian McKellen", "Viggo Mortensen"},
	},
	{
		ID: "22", Title: "The Godfather", Genre: "Crime", Year: 1972, Rating: 8.7,
		Description: "The aging head of a crime dynasty hands control to his reluctant youngest son.",
		Director:    "Francis Ford Coppola",
		Cast:        []string{"Marlon Brando", "Al Pacino", "James Caan"},
	},
	{
		ID: "23", Title: "Free Solo", Genre: "Documentary", Year: 2018, Rating: 7.9,
		Description: "A climber prepares to scale El Capitan without ropes.",
		Director:    "Jimmy Chin",
		Cast:        []string{"Alex Honnold", "Tommy Caldwell", "Jimmy Chin"},
	},
	{
		ID: "24", Title: "Paddington 2", Genre: "Family", Year: 2017, Rating: 7.6,
		Description: "A well-mannered bear is framed for stealing a rare pop-up book.",
		Director:    "Paul King",
		Cast:        []string{"Ben Whishaw", "Hugh Grant", "Sally Hawkins"},
	},
	{
		ID: "25", Title: "True Grit", Genre: "Western", Year: 2010, Rating: 7.3,
		Description: "A stubborn teenager hires a hard-drinking marshal to track her father's killer.",
		Director:    "Joel Coen",
		Cast:        []string{"Jeff Bridges", "Hailee Steinfeld", "Matt Damon"},
	},
	{
		ID: "26", Title: "The Social Network", Genre: "Biography", Year: 2010, Rating: 7.4,
		Description: "The founding of a social network leaves its creator rich and short of friends.",
		Director:    "David Fincher",
		Cast:        []string{"Jesse Eisenberg", "Andrew Garfield", "Justin Timberlake"},
	},
	{
		ID: "27", Title: "Schindler's List", Genre: "History", Year: 1993, Rating: 8.6,
		Description: "A German industrialist saves the lives of more than a thousand Jewish workers.",
		Director:    "Steven Spielberg",
		Cast:        []string{"Liam Neeson", "Ben Kingsley", "Ralph Fiennes"},
	},
	{
		ID: "28", Title: "Whiplash", Genre: "Music", Year: 2014, Rating: 8.4,
		Description: "A young drummer is pushed to the edge by a ruthless conservatory instructor.",
		Director:    "Damien Chazelle",
		Cast:        []string{"Miles Teller", "J.K. Simmons", "Melissa Benoist"},
	},
	{
		ID: "29", Title: "La La Land", Genre: "Musical", Year: 2016, Rating: 7.9,
		Description: "A jazz pianist and an aspiring actress fall in love while chasing their dreams in Los Angeles.",
		Director:    "Damien Chazelle",
		Cast:        []string{"Ryan Gosling", "Emma Stone", "John Legend"},
	},
	{
		ID: "30", Title: "Rocky", Genre: "Sport", Year: 1976, Rating: 7.8,
		Description: "A small-time boxer gets a shot at the heavyweight title.",
		Director:    "John G. Avildsen",
		Cast:        []string{"Sylvester Stallone", "Talia Shire", "Burt Young"},
	},
}

// Catalog returns a copy of the bundled catalog in catalog order.
func Catalog() []models.MovieRecommendation {
	out := make([]models.MovieRecommendation, len(catalog))
	for i := range catalog {
		out[i] = cloneMovie(catalog[i])
	}
	return out
}

func cloneMovie(m models.MovieRecommendation) models.MovieRecommendation {
	m.Cast = append([]string(nil), m.Cast...)
	return m
}
