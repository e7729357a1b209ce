package syllabus

import "github.com/campusbridge/portal-api/internal/models"

// builtinCourses is the curated curriculum table. CS101 carries the full
// twelve-unit introductory sequence; the remaining entries cover the core
// first-year catalog.
var builtinCourses = []models.CourseSyllabus{
	{
		Code:       "CS101",
		Title:      "Introduction to Computer Science",
		Credits:    4,
		Difficulty: models.DifficultyBeginner,
		Units: []models.CourseUnit{
			{Number: 1, Title: "Computing Foundations", Topics: []string{"History of computing", "Hardware and software", "Binary representation"}},
			{Number: 2, Title: "Problem Solving & Algorithms", Topics: []string{"Pseudocode", "Flowcharts", "Algorithmic thinking"}},
			{Number: 3, Title: "Variables & Data Types", Topics: []string{"Primitive types", "Type conversion", "Expressions"}},
			{Number: 4, Title: "Control Flow", Topics: []string{"Conditionals", "Loops", "Nested structures"}},
			{Number: 5, Title: "Functions & Modularity", Topics: []string{"Parameters", "Return values", "Scope"}},
			{Number: 6, Title: "Collections", Topics: []string{"Arrays", "Lists", "Dictionaries"}},
			{Number: 7, Title: "Strings & Text Processing", Topics: []string{"String operations", "Formatting", "Searching"}},
			{Number: 8, Title: "File Input/Output", Topics: []string{"Reading files", "Writing files", "Error handling"}},
			{Number: 9, Title: "Object-Oriented Basics", Topics: []string{"Classes", "Objects", "Encapsulation"}},
			{Number: 10, Title: "Recursion", Topics: []string{"Base cases", "Recursive decomposition", "Call stacks"}},
			{Number: 11, Title: "Searching & Sorting", Topics: []string{"Linear search", "Binary search", "Elementary sorts"}},
			{Number: 12, Title: "Capstone Project & Review", Topics: []string{"Project design", "Testing", "Course review"}},
		},
	},
	{
		Code:       "CS201",
		Title:      "Data Structures and Algorithms",
		Credits:    4,
		Difficulty: models.DifficultyIntermediate,
		Units: []models.CourseUnit{
			{Number: 1, Title: "Complexity Analysis", Topics: []string{"Big-O notation", "Time and space trade-offs"}},
			{Number: 2, Title: "Linked Lists", Topics: []string{"Singly linked", "Doubly linked", "Sentinel nodes"}},
			{Number: 3, Title: "Stacks & Queues", Topics: []string{"LIFO and FIFO", "Deques", "Applications"}},
			{Number: 4, Title: "Trees", Topics: []string{"Binary trees", "BSTs", "Traversals"}},
			{Number: 5, Title: "Heaps & Priority Queues", Topics: []string{"Heap property", "Heapify", "Heap sort"}},
			{Number: 6, Title: "Hash Tables", Topics: []string{"Hash functions", "Collision resolution", "Load factor"}},
			{Number: 7, Title: "Graphs", Topics: []string{"Representations", "BFS and DFS", "Shortest paths"}},
			{Number: 8, Title: "Sorting Algorithms", Topics: []string{"Merge sort", "Quick sort", "Stability"}},
			{Number: 9, Title: "Dynamic Programming", Topics: []string{"Memoization", "Tabulation", "Classic problems"}},
			{Number: 10, Title: "Algorithm Design Review", Topics: []string{"Greedy strategies", "Divide and conquer", "Exam preparation"}},
		},
	},
	{
		Code:       "MATH101",
		Title:      "Calculus I",
		Credits:    3,
		Difficulty: models.DifficultyBeginner,
		Units: []models.CourseUnit{
			{Number: 1, Title: "Limits & Continuity", Topics: []string{"Limit laws", "One-sided limits", "Continuity"}},
			{Number: 2, Title: "Derivatives", Topics: []string{"Definition", "Differentiation rules", "Chain rule"}},
			{Number: 3, Title: "Applications of Derivatives", Topics: []string{"Related rates", "Optimization", "Curve sketching"}},
			{Number: 4, Title: "Integrals", Topics: []string{"Antiderivatives", "Definite integrals", "Fundamental theorem"}},
			{Number: 5, Title: "Applications of Integration", Topics: []string{"Areas", "Volumes", "Average value"}},
			{Number: 6, Title: "Review & Final Exam", Topics: []string{"Problem sets", "Past papers", "Exam strategies"}},
		},
	},
	{
		Code:       "PHY101",
		Title:      "General Physics I",
		Credits:    3,
		Difficulty: models.DifficultyBeginner,
		Units: []models.CourseUnit{
			{Number: 1, Title: "Measurement & Vectors", Topics: []string{"Units", "Dimensional analysis", "Vector algebra"}},
			{Number: 2, Title: "Kinematics", Topics: []string{"Motion in one dimension", "Projectile motion"}},
			{Number: 3, Title: "Newton's Laws", Topics: []string{"Forces", "Free-body diagrams", "Friction"}},
			{Number: 4, Title: "Work & Energy", Topics: []string{"Kinetic energy", "Potential energy", "Conservation"}},
			{Number: 5, Title: "Momentum & Collisions", Topics: []string{"Impulse", "Elastic and inelastic collisions"}},
			{Number: 6, Title: "Rotational Motion", Topics: []string{"Torque", "Angular momentum", "Moment of inertia"}},
			{Number: 7, Title: "Oscillations & Review", Topics: []string{"Simple harmonic motion", "Pendulums", "Final review"}},
		},
	},
	{
		Code:       "ENG101",
		Title:      "Academic Writing",
		Credits:    2,
		Difficulty: models.DifficultyBeginner,
		Units: []models.CourseUnit{
			{Number: 1, Title: "The Writing Process", Topics: []string{"Brainstorming", "Drafting", "Revision"}},
			{Number: 2, Title: "Essay Structure", Topics: []string{"Thesis statements", "Paragraph cohesion", "Transitions"}},
			{Number: 3, Title: "Argumentation", Topics: []string{"Claims and evidence", "Counterarguments", "Rhetoric"}},
			{Number: 4, Title: "Research & Citation", Topics: []string{"Source evaluation", "Quoting and paraphrasing", "Citation styles"}},
			{Number: 5, Title: "Portfolio Review", Topics: []string{"Peer review", "Editing", "Final portfolio"}},
		},
	},
	{
		Code:       "CS301",
		Title:      "Database Systems",
		Credits:    4,
		Difficulty: models.DifficultyAdvanced,
		Units: []models.CourseUnit{
			{Number: 1, Title: "Relational Model", Topics: []string{"Relations", "Keys", "Integrity constraints"}},
			{Number: 2, Title: "SQL Fundamentals", Topics: []string{"Queries", "Joins", "Aggregation"}},
			{Number: 3, Title: "Database Design", Topics: []string{"ER modeling", "Normalization", "Denormalization"}},
			{Number: 4, Title: "Transactions", Topics: []string{"ACID", "Isolation levels", "Concurrency control"}},
			{Number: 5, Title: "Indexing & Query Optimization", Topics: []string{"B-trees", "Query plans", "Statistics"}},
			{Number: 6, Title: "Distributed Data", Topics: []string{"Replication", "Partitioning", "CAP theorem"}},
			{Number: 7, Title: "Project & Review", Topics: []string{"Schema design project", "Performance tuning", "Final review"}},
		},
	},
}
